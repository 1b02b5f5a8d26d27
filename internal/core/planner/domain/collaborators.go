package domain

import (
	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// SchemaReader is the narrow schema-facing interface the planner
// consumes (spec.md §6 "Schema reader"). A real implementation wraps
// a parsed schema.Schema; tests wrap a hand-built one.
type SchemaReader interface {
	// RelatedModel resolves the model on the far side of a relation
	// field.
	RelatedModel(f schema.Field) (schema.Model, error)
	// InverseFieldName returns the name of the field on the far model
	// that points back through the same relation, so the nested
	// expander can exclude it from
	// RelationFieldsNotOnPathOnLastModel.
	InverseFieldName(f schema.Field) string
	// Cascades reports whether this field's relation cascades deletes
	// from the near side to the far side.
	Cascades(f schema.Field) bool
}

// IDGenerator mints a fresh, collision-resistant, lexicographically
// sortable, URL-safe identifier for a node created during planning
// (spec.md §6 "ID generator", §9 "ID injection timing").
type IDGenerator interface {
	NewID() string
}

// MetricsSink receives the per-top-level-expansion mutaction count
// (spec.md §6 "Metrics sink", §5 "atomic-add semantics").
type MetricsSink interface {
	IncrMutactionCount(projectID string, by int)
}
