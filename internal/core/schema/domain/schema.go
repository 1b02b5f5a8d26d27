// Package domain contains the schema entities the planner reads from —
// the Project/Schema/Model/Field/Relation graph the GraphQL deploy path
// (out of scope here) would otherwise build by parsing SDL.
package domain

import "fmt"

// Project is the root handed to the planner for a single invocation: an
// identifier (used only for metrics tagging) plus the typed Schema.
type Project struct {
	ID     string
	Schema Schema
}

// Schema is the set of Models reachable from a Project.
type Schema struct {
	Models []Model
}

// ModelByName looks up a Model by name. Returns an opaque error when
// absent — a missing model is a structural precondition failure, not a
// planner-level schema violation (spec.md §7.2).
func (s Schema) ModelByName(name string) (Model, error) {
	for _, m := range s.Models {
		if m.Name == name {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("schema: no model named %q", name)
}

// Model is one node type in the relation graph.
type Model struct {
	Name   string
	Fields []Field
}

// FieldByName finds a field on the model by name.
func (m Model) FieldByName(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RelationFields returns every field on the model that is a relation
// (i.e. has a non-empty RelatedModel; its Relation may be nil).
func (m Model) RelationFields() []Field {
	var out []Field
	for _, f := range m.Fields {
		if f.IsRelation() {
			out = append(out, f)
		}
	}
	return out
}

// Field is a scalar or relation field on a Model.
type Field struct {
	Name       string
	IsRequired bool
	IsList     bool
	// RelatedModel is the name of the far-side model; empty for scalar
	// fields.
	RelatedModel string
	// InverseField is the name of the field on RelatedModel that points
	// back through the same relation edge; empty for scalar fields or
	// one-sided relations.
	InverseField string
	Relation     *Relation
}

// IsRelation reports whether this field traverses an edge in the
// relation graph.
func (f Field) IsRelation() bool {
	return f.RelatedModel != ""
}

// Relation describes the cascade/referential-action policy on each
// side of a relation edge. Mirrors the teacher's
// internal/core/schema/domain.Relation shape.
type Relation struct {
	Name         string
	OnDeleteNear ReferentialAction // action applied to the far side when the near node is deleted
	OnDeleteFar  ReferentialAction // action applied to the near side when the far node is deleted
	RelationType RelationType
}

// CascadesOnDelete reports whether deleting the node on the near side
// of the edge (the side this Field is declared on) implies deleting
// the far side too.
func (r *Relation) CascadesOnDelete() bool {
	return r != nil && r.OnDeleteNear == Cascade
}

// RelationType is the cardinality of a relation edge.
type RelationType string

const (
	OneToOne   RelationType = "OneToOne"
	OneToMany  RelationType = "OneToMany"
	ManyToOne  RelationType = "ManyToOne"
	ManyToMany RelationType = "ManyToMany"
)

// ReferentialAction is the behavior triggered on the far side of a
// relation when the near side is mutated.
type ReferentialAction string

const (
	Cascade    ReferentialAction = "Cascade"
	Restrict   ReferentialAction = "Restrict"
	NoAction   ReferentialAction = "NoAction"
	SetNull    ReferentialAction = "SetNull"
	SetDefault ReferentialAction = "SetDefault"
)
