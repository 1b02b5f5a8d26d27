// Package domain holds the planner's own value types: the Path
// algebra, the typed input tree (CoolArgs/NestedMutations), and the
// Mutaction output alphabet. Every type here is immutable and created
// fresh for one planner invocation — see spec.md §3 "Lifecycles".
package domain

import (
	"fmt"

	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// NodeSelector identifies at most one node on a Model by a single
// field/value pair. ForID is the canonical constructor used whenever
// the planner mints a fresh identity for a nested create.
type NodeSelector struct {
	Model schema.Model
	Field string
	Value interface{}
}

// ForID builds the canonical ID selector.
func ForID(model schema.Model, id interface{}) NodeSelector {
	return NodeSelector{Model: model, Field: "id", Value: id}
}

// WithValue returns a copy of the selector with a new value — used by
// currentWhere to reflect an identity change performed by the same
// update (spec.md §4.2.5).
func (s NodeSelector) WithValue(v interface{}) NodeSelector {
	s.Value = v
	return s
}

// EdgeKind distinguishes the two Edge variants.
type EdgeKind int

const (
	// ModelEdgeKind targets some (yet unidentified) node of the related
	// model.
	ModelEdgeKind EdgeKind = iota
	// NodeEdgeKind targets a specific identified node on the other side.
	NodeEdgeKind
)

// Edge is one hop of a Path, always taken through a relation Field.
// It is either a ModelEdge (Selector is the zero value) or a NodeEdge
// (Selector identifies a concrete node).
type Edge struct {
	Kind     EdgeKind
	Field    schema.Field
	Model    schema.Model // the model reached by taking this edge
	Selector NodeSelector // only meaningful when Kind == NodeEdgeKind
}

// Path is an immutable traversal from a root model through zero or
// more relation Edges. Extenders (Extend, RemoveLastEdge,
// LastEdgeToNodeEdge) always return a new Path; none mutate the
// receiver, matching spec.md §9's "never mutate a Path in place".
type Path struct {
	root      NodeSelector
	rootModel schema.Model
	edges     []Edge
}

// NewPath builds the root Path for a top-level operation.
func NewPath(root NodeSelector, model schema.Model) Path {
	return Path{root: root, rootModel: model}
}

// Root returns the root NodeSelector.
func (p Path) Root() NodeSelector { return p.root }

// Edges returns the path's edges. The returned slice must not be
// mutated by callers.
func (p Path) Edges() []Edge { return p.edges }

// WithRoot returns a copy of the path with its root selector replaced
// — used when an update changes the value of the field the root is
// keyed on (spec.md §4.1.2 "updatedRoot").
func (p Path) WithRoot(root NodeSelector) Path {
	return Path{root: root, rootModel: p.rootModel, edges: p.edges}
}

// LastModel is the related model of the last edge, or the root model
// when the path has no edges.
func (p Path) LastModel() schema.Model {
	if len(p.edges) == 0 {
		return p.rootModel
	}
	return p.edges[len(p.edges)-1].Model
}

// Extend appends a new ModelEdge reached through field f, targeting
// relatedModel.
func (p Path) Extend(f schema.Field, relatedModel schema.Model) Path {
	edges := make([]Edge, len(p.edges), len(p.edges)+1)
	copy(edges, p.edges)
	edges = append(edges, Edge{Kind: ModelEdgeKind, Field: f, Model: relatedModel})
	return Path{root: p.root, rootModel: p.rootModel, edges: edges}
}

// RemoveLastEdge pops the trailing edge, returning the shorter Path.
// Panics if the path has no edges — callers (the cascade resolver)
// only ever call this on paths known to be longer than their start
// point.
func (p Path) RemoveLastEdge() Path {
	if len(p.edges) == 0 {
		panic("domain: RemoveLastEdge on a path with no edges")
	}
	edges := make([]Edge, len(p.edges)-1)
	copy(edges, p.edges[:len(p.edges)-1])
	return Path{root: p.root, rootModel: p.rootModel, edges: edges}
}

// LastEdgeToNodeEdge replaces the trailing edge with a NodeEdge
// carrying sel; a trailing ModelEdge is pinned, a trailing NodeEdge is
// re-pinned to sel.
func (p Path) LastEdgeToNodeEdge(sel NodeSelector) Path {
	if len(p.edges) == 0 {
		panic("domain: LastEdgeToNodeEdge on a path with no edges")
	}
	edges := make([]Edge, len(p.edges))
	copy(edges, p.edges)
	last := edges[len(edges)-1]
	last.Kind = NodeEdgeKind
	last.Selector = sel
	last.Model = sel.Model
	edges[len(edges)-1] = last
	return Path{root: p.root, rootModel: p.rootModel, edges: edges}
}

// LastEdgeField returns the field of the trailing edge, if any.
func (p Path) LastEdgeField() (schema.Field, bool) {
	if len(p.edges) == 0 {
		return schema.Field{}, false
	}
	return p.edges[len(p.edges)-1].Field, true
}

// RelationFieldsNotOnPathOnLastModel returns the relation fields of
// LastModel excluding the inverse of the trailing edge's field (so the
// nested expander never walks straight back where it came from).
// inverseOf resolves a Field to the name of its inverse field on the
// related model; it is supplied by the schema reader.
func (p Path) RelationFieldsNotOnPathOnLastModel(inverseOf func(f schema.Field) string) []schema.Field {
	last, hasLast := p.LastEdgeField()
	var exclude string
	if hasLast {
		exclude = inverseOf(last)
	}
	var out []schema.Field
	for _, f := range p.LastModel().RelationFields() {
		if hasLast && f.Name == exclude {
			continue
		}
		out = append(out, f)
	}
	return out
}

// String renders a human-readable trace of the path, used for debug
// logging, CLI output, and as the cascade resolver's deduplication key.
func (p Path) String() string {
	s := fmt.Sprintf("%s#%v", p.rootModel.Name, p.root.Value)
	for _, e := range p.edges {
		switch e.Kind {
		case NodeEdgeKind:
			s += fmt.Sprintf("->%s->%s#%v", e.Field.Name, e.Model.Name, e.Selector.Value)
		default:
			s += fmt.Sprintf("->%s->%s", e.Field.Name, e.Model.Name)
		}
	}
	return s
}

// Len reports the number of edges on the path — used by the cascade
// resolver's depth ordering (spec.md §4.3).
func (p Path) Len() int { return len(p.edges) }

// Equal reports structural equality, used by tests asserting exact
// mutaction sequences. Compares by name/value rather than struct
// identity since Model embeds a Fields slice and is not `==`-comparable.
func (p Path) Equal(o Path) bool {
	if !selectorsEqual(p.root, o.root) || p.rootModel.Name != o.rootModel.Name || len(p.edges) != len(o.edges) {
		return false
	}
	for i := range p.edges {
		a, b := p.edges[i], o.edges[i]
		if a.Kind != b.Kind || a.Field.Name != b.Field.Name || a.Model.Name != b.Model.Name || !selectorsEqual(a.Selector, b.Selector) {
			return false
		}
	}
	return true
}

func selectorsEqual(a, b NodeSelector) bool {
	return a.Model.Name == b.Model.Name && a.Field == b.Field && a.Value == b.Value
}
