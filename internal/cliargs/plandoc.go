package cliargs

import (
	"encoding/json"
	"fmt"

	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// PlanDoc is the on-disk shape the `mutaplan plan` command reads: a
// schema plus exactly one top-level write request, mirroring the
// single-top-level-write-request framing of spec.md §1.
type PlanDoc struct {
	Schema         SchemaDoc               `json:"schema"`
	ProjectID      string                  `json:"projectId"`
	Operation      string                  `json:"operation"`
	RootModel      string                  `json:"rootModel"`
	RootSelector   *selectorDoc            `json:"rootSelector,omitempty"`
	Args           json.RawMessage         `json:"args,omitempty"`
	PreviousValues map[string]interface{}  `json:"previousValues,omitempty"`
	CreateWhere    *selectorDoc            `json:"createWhere,omitempty"`
	UpdatedWhere   *selectorDoc            `json:"updatedWhere,omitempty"`
	CreateArgs     json.RawMessage         `json:"createArgs,omitempty"`
	UpdateArgs     json.RawMessage         `json:"updateArgs,omitempty"`
}

// ParsePlanDoc decodes raw bytes into a PlanDoc.
func ParsePlanDoc(raw []byte) (PlanDoc, error) {
	var doc PlanDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("cliargs: decoding plan document: %w", err)
	}
	return doc, nil
}

// Resolved bundles everything a caller needs to invoke the planner for
// this document's operation: the parsed schema, the root model, and
// (when present) a root NodeSelector built against that model.
type Resolved struct {
	Schema   schema.Schema
	Model    schema.Model
	RootPath domain.Path
}

// Resolve decodes the schema and builds the root Path for the
// document's RootModel/RootSelector.
func (d PlanDoc) Resolve() (Resolved, error) {
	sch, err := d.Schema.ToSchema()
	if err != nil {
		return Resolved{}, err
	}
	model, err := sch.ModelByName(d.RootModel)
	if err != nil {
		return Resolved{}, err
	}

	var root domain.NodeSelector
	if d.RootSelector != nil {
		root, err = d.RootSelector.toSelector(model)
		if err != nil {
			return Resolved{}, err
		}
	}

	return Resolved{
		Schema:   sch,
		Model:    model,
		RootPath: domain.NewPath(root, model),
	}, nil
}

// ParseArgs parses the document's Args against the resolved model.
func (d PlanDoc) ParseArgs(r Resolved) (domain.CoolArgs, error) {
	return ParseCoolArgs(r.Schema, r.Model, d.Args)
}

// ParseCreateArgs parses the document's CreateArgs against the
// resolved model, for the upsert operation.
func (d PlanDoc) ParseCreateArgs(r Resolved) (domain.CoolArgs, error) {
	return ParseCoolArgs(r.Schema, r.Model, d.CreateArgs)
}

// ParseUpdateArgs parses the document's UpdateArgs against the
// resolved model, for the upsert operation.
func (d PlanDoc) ParseUpdateArgs(r Resolved) (domain.CoolArgs, error) {
	return ParseCoolArgs(r.Schema, r.Model, d.UpdateArgs)
}

// selector resolves an optional selectorDoc (CreateWhere/UpdatedWhere)
// against the resolved model.
func (d PlanDoc) selector(r Resolved, s *selectorDoc) (domain.NodeSelector, error) {
	if s == nil {
		return domain.NodeSelector{}, fmt.Errorf("cliargs: missing selector for operation %q", d.Operation)
	}
	return s.toSelector(r.Model)
}

// CreateWhereSelector resolves CreateWhere.
func (d PlanDoc) CreateWhereSelector(r Resolved) (domain.NodeSelector, error) {
	return d.selector(r, d.CreateWhere)
}

// UpdatedWhereSelector resolves UpdatedWhere.
func (d PlanDoc) UpdatedWhereSelector(r Resolved) (domain.NodeSelector, error) {
	return d.selector(r, d.UpdatedWhere)
}
