// Package cascade implements the cascading-delete path resolver:
// spec.md §4.3. Given a starting Path, it walks every relation edge
// declared onDelete: Cascade on the traversed side, transitively, and
// emits one CascadingDeleteRelationMutactions mutaction per edge,
// deepest-first.
//
// Grounded on the teacher's relation-JOIN walk
// (query/compiler/relations.go buildRelationJoins), which recurses
// over a model's relation fields collecting one entry per edge in
// schema order; here the same shape collects delete-cleanup mutactions
// instead of SQL joins.
package cascade

import (
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
)

// Resolve returns the CascadingDeleteRelationMutactions vector for
// startPoint, emitted deepest-first as spec.md §4.3 requires.
func Resolve(reader domain.SchemaReader, projectID string, startPoint domain.Path) ([]domain.Mutaction, error) {
	paths, err := collectCascadingPaths(reader, startPoint)
	if err != nil {
		return nil, err
	}
	return emitDeepestFirst(projectID, startPoint, paths), nil
}

// collectCascadingPaths enumerates the transitive closure of
// startPoint along cascade-declared edges, including startPoint
// itself, in stable depth-first / schema-order enumeration.
func collectCascadingPaths(reader domain.SchemaReader, startPoint domain.Path) ([]domain.Path, error) {
	all := []domain.Path{startPoint}
	var walk func(p domain.Path) error
	walk = func(p domain.Path) error {
		for _, f := range p.LastModel().RelationFields() {
			if !reader.Cascades(f) {
				continue
			}
			related, err := reader.RelatedModel(f)
			if err != nil {
				return err
			}
			next := p.Extend(f, related)
			all = append(all, next)
			if err := walk(next); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(startPoint); err != nil {
		return nil, err
	}
	return all, nil
}

// emitDeepestFirst applies the depth-ordering algorithm of spec.md
// §4.3: repeatedly take every path at the current maximum edge count
// (among paths strictly longer than startPoint), emit one mutaction
// per path, then fold each into its parent (one edge shorter) for the
// next round. Paths that shrink back to startPoint's own depth are not
// re-emitted — startPoint's own deletion is handled by the caller
// (DeleteRelationCheck + DeleteDataItem), not by this resolver.
//
// spec.md's pseudocode defines Q as a *set*: "Q := (Q \ longest) ∪
// {p.removeLastEdge : p ∈ longest}". A folded parent coincides, by
// value, with a path collectCascadingPaths already enumerated at that
// shallower depth (every prefix of a cascading path is itself a
// cascading path), so without deduplication a naive slice
// implementation double-emits it once as an original enumeration entry
// and once as a folded parent. q is keyed by Path.String() to make the
// union a real set union and keep each edge's cleanup mutaction
// singular, per spec.md §8 invariant 4.
func emitDeepestFirst(projectID string, startPoint domain.Path, all []domain.Path) []domain.Mutaction {
	startLen := startPoint.Len()

	type entry struct {
		path domain.Path
		key  string
	}

	seen := map[string]bool{}
	var q []entry
	for _, p := range all {
		if p.Len() <= startLen {
			continue
		}
		key := p.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		q = append(q, entry{path: p, key: key})
	}

	var out []domain.Mutaction
	for len(q) > 0 {
		maxLen := 0
		for _, e := range q {
			if e.path.Len() > maxLen {
				maxLen = e.path.Len()
			}
		}

		var longest, rest []entry
		for _, e := range q {
			if e.path.Len() == maxLen {
				longest = append(longest, e)
			} else {
				rest = append(rest, e)
			}
		}

		for _, e := range longest {
			out = append(out, domain.Mutaction{
				Kind:      domain.CascadingDeleteRelationMutactions,
				ProjectID: projectID,
				Path:      e.path,
			})
		}

		q = rest
		inQueue := make(map[string]bool, len(q))
		for _, e := range q {
			inQueue[e.key] = true
		}
		for _, e := range longest {
			parent := e.path.RemoveLastEdge()
			key := parent.String()
			if parent.Len() > startLen && !inQueue[key] {
				inQueue[key] = true
				q = append(q, entry{path: parent, key: key})
			}
		}
	}
	return out
}

// HasCascade reports whether any cascade applies at or beyond p — the
// §8 round-trip law "cascadingDelete(p) returns the empty vector iff
// no relation edge at or beyond p declares cascade".
func HasCascade(reader domain.SchemaReader, p domain.Path) bool {
	for _, f := range p.LastModel().RelationFields() {
		if reader.Cascades(f) {
			return true
		}
	}
	return false
}
