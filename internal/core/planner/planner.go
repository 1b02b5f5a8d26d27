// Package planner is the top-level entry point: spec.md §2's single
// exported surface over the four operation expanders plus the
// standalone cascading-delete resolver. A Planner is a pure function
// of its three collaborators and carries no mutable state of its own
// beyond them — every For*/CascadingDelete call is independently reentrant.
package planner

import (
	"github.com/satishbabariya/mutaplan/internal/core/planner/cascade"
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	"github.com/satishbabariya/mutaplan/internal/core/planner/expander"
	"github.com/satishbabariya/mutaplan/internal/debug"
)

// Planner wires the three external collaborators spec.md §6 names
// (schema reader, ID generator, metrics sink) to the expanders.
type Planner struct {
	Schema  domain.SchemaReader
	IDs     domain.IDGenerator
	Metrics domain.MetricsSink
}

// New builds a Planner over its collaborators.
func New(schema domain.SchemaReader, ids domain.IDGenerator, metrics domain.MetricsSink) *Planner {
	return &Planner{Schema: schema, IDs: ids, Metrics: metrics}
}

func (p *Planner) env(projectID string) expander.Env {
	return expander.Env{ProjectID: projectID, Schema: p.Schema, IDs: p.IDs}
}

func (p *Planner) record(operation, projectID string, path domain.Path, out []domain.Mutaction, err error) ([]domain.Mutaction, error) {
	if err != nil {
		return nil, err
	}
	if p.Metrics != nil {
		p.Metrics.IncrMutactionCount(projectID, len(out))
	}
	debug.Plan(operation, path.String(), len(out))
	return out, nil
}

// ForCreate plans a top-level Create (spec.md §4.1.1).
func (p *Planner) ForCreate(projectID string, path domain.Path, args domain.CoolArgs) ([]domain.Mutaction, error) {
	out, err := expander.Create(p.env(projectID), path, args)
	return p.record("create", projectID, path, out, err)
}

// ForUpdate plans a top-level Update (spec.md §4.1.2).
func (p *Planner) ForUpdate(projectID string, path domain.Path, args domain.CoolArgs, previousValues map[string]interface{}) ([]domain.Mutaction, error) {
	out, err := expander.Update(p.env(projectID), path, args, previousValues)
	return p.record("update", projectID, path, out, err)
}

// ForUpsert plans a top-level Upsert (spec.md §4.1.3).
func (p *Planner) ForUpsert(projectID string, path domain.Path, createWhere, updatedWhere domain.NodeSelector, createArgs, updateArgs domain.CoolArgs) ([]domain.Mutaction, error) {
	out, err := expander.Upsert(p.env(projectID), path, createWhere, updatedWhere, createArgs, updateArgs)
	return p.record("upsert", projectID, path, out, err)
}

// ForDelete plans a top-level Delete (spec.md §4.1.4).
func (p *Planner) ForDelete(projectID string, path domain.Path, previousValues map[string]interface{}) ([]domain.Mutaction, error) {
	out, err := expander.Delete(p.env(projectID), path, previousValues)
	return p.record("delete", projectID, path, out, err)
}

// CascadingDelete exposes the resolver of spec.md §4.3 directly, for
// callers that need the cascade vector for a path without the
// surrounding VerifyWhere/DeleteRelationCheck/DeleteDataItem envelope
// ForDelete adds.
func (p *Planner) CascadingDelete(projectID string, startPoint domain.Path) ([]domain.Mutaction, error) {
	out, err := cascade.Resolve(p.Schema, projectID, startPoint)
	return p.record("cascade", projectID, startPoint, out, err)
}
