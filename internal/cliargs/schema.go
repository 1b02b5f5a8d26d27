// Package cliargs decodes the JSON schema and input-tree documents the
// `mutaplan plan` command reads from disk into the planner's own
// domain types (schema/domain.Schema, planner/domain.CoolArgs). This
// plays the role the teacher's GraphQL argument coercer plays upstream
// of the planner (spec.md §1(c) places that coercion out of scope) —
// it exists only so the CLI dry-run harness has something to feed the
// otherwise-pure planner, never inside the planner package itself.
package cliargs

import (
	"encoding/json"
	"fmt"

	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// SchemaDoc is the on-disk JSON shape of a Project's Schema.
type SchemaDoc struct {
	Models []ModelDoc `json:"models"`
}

// ModelDoc is one model in SchemaDoc.
type ModelDoc struct {
	Name   string     `json:"name"`
	Fields []FieldDoc `json:"fields"`
}

// FieldDoc is one field of a ModelDoc. Relation fields set RelatedModel
// and optionally Relation; scalar fields leave both empty.
type FieldDoc struct {
	Name         string       `json:"name"`
	Required     bool         `json:"required"`
	List         bool         `json:"list"`
	RelatedModel string       `json:"relatedModel,omitempty"`
	InverseField string       `json:"inverseField,omitempty"`
	Relation     *RelationDoc `json:"relation,omitempty"`
}

// RelationDoc carries the cascade policy declared on a relation field.
type RelationDoc struct {
	Name         string `json:"name"`
	OnDeleteNear string `json:"onDeleteNear"`
	OnDeleteFar  string `json:"onDeleteFar"`
	Type         string `json:"type"`
}

// ToSchema converts the decoded document into a schema.Schema.
func (d SchemaDoc) ToSchema() (schema.Schema, error) {
	var out schema.Schema
	for _, m := range d.Models {
		model := schema.Model{Name: m.Name}
		for _, f := range m.Fields {
			field := schema.Field{
				Name:         f.Name,
				IsRequired:   f.Required,
				IsList:       f.List,
				RelatedModel: f.RelatedModel,
				InverseField: f.InverseField,
			}
			if f.Relation != nil {
				field.Relation = &schema.Relation{
					Name:         f.Relation.Name,
					OnDeleteNear: schema.ReferentialAction(f.Relation.OnDeleteNear),
					OnDeleteFar:  schema.ReferentialAction(f.Relation.OnDeleteFar),
					RelationType: schema.RelationType(f.Relation.Type),
				}
			}
			model.Fields = append(model.Fields, field)
		}
		out.Models = append(out.Models, model)
	}
	return out, nil
}

// ParseSchema decodes raw JSON bytes into a schema.Schema.
func ParseSchema(raw []byte) (schema.Schema, error) {
	var doc SchemaDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return schema.Schema{}, fmt.Errorf("cliargs: decoding schema: %w", err)
	}
	return doc.ToSchema()
}
