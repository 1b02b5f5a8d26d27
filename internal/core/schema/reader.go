// Package schema adapts a parsed Schema into the narrow SchemaReader
// interface the planner consumes, analogous to the teacher's
// MetadataRegistry (v3/internal/core/query/compiler/relations.go)
// which resolves relation metadata by name for SQL JOIN compilation.
// Here the same lookup serves path traversal instead of SQL.
package schema

import (
	"fmt"

	domain "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// Reader implements planner-facing schema lookups over a fixed
// domain.Schema.
type Reader struct {
	schema domain.Schema
}

// NewReader wraps a schema for planner consumption.
func NewReader(s domain.Schema) *Reader {
	return &Reader{schema: s}
}

// RelatedModel resolves the model on the far side of a relation field.
func (r *Reader) RelatedModel(f domain.Field) (domain.Model, error) {
	if !f.IsRelation() {
		return domain.Model{}, fmt.Errorf("schema: field %q is not a relation", f.Name)
	}
	m, err := r.schema.ModelByName(f.RelatedModel)
	if err != nil {
		return domain.Model{}, fmt.Errorf("schema: relation field %q: %w", f.Name, err)
	}
	return m, nil
}

// InverseFieldName returns the name of the field on the far model that
// points back through the same relation.
func (r *Reader) InverseFieldName(f domain.Field) string {
	return f.InverseField
}

// Cascades reports whether the relation on field f cascades deletes
// from the near side to the far side.
func (r *Reader) Cascades(f domain.Field) bool {
	return f.Relation.CascadesOnDelete()
}
