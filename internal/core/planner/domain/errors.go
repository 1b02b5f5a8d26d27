package domain

import "fmt"

// RelationRequiredError is the sole schema-violation-at-planning-time
// error (spec.md §7.1): a nested create failed to satisfy a required
// outbound relation. Modeled as a small structured value — following
// the teacher's psl/diagnostics.DatamodelError pattern — rather than a
// bare fmt.Errorf string, so callers can errors.As it.
type RelationRequiredError struct {
	FieldName string
	ModelName string
}

func (e *RelationRequiredError) Error() string {
	return fmt.Sprintf("RelationIsRequired: field %q on model %q must be connected or created", e.FieldName, e.ModelName)
}

// NewRelationRequiredError constructs the error for field f on model m.
func NewRelationRequiredError(fieldName, modelName string) *RelationRequiredError {
	return &RelationRequiredError{FieldName: fieldName, ModelName: modelName}
}
