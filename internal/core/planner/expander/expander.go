// Package expander implements the operation expanders of spec.md §4:
// one per top-level op (Create, Update, Upsert, Delete) plus the
// shared nested-mutation expander each recurses into. Every expander
// returns a flat []domain.Mutaction in the canonical order spec.md
// §4.4 fixes as part of the observable contract.
package expander

import (
	"github.com/satishbabariya/mutaplan/internal/core/planner/cascade"
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
)

// Env bundles the collaborators every expander needs: the schema
// reader, the ID generator, and the project ID mutactions are tagged
// with. Expanders are free functions over Env rather than methods on a
// stateful receiver, keeping them trivially reentrant (spec.md §5).
type Env struct {
	ProjectID string
	Schema    domain.SchemaReader
	IDs       domain.IDGenerator
}

// Create implements spec.md §4.1.1.
func Create(env Env, path domain.Path, args domain.CoolArgs) ([]domain.Mutaction, error) {
	nonList, list := args.Split(domain.CreateMode)
	out := []domain.Mutaction{{
		Kind:        domain.CreateDataItem,
		ProjectID:   env.ProjectID,
		Path:        path,
		NonListArgs: nonList,
		ListArgs:    list,
	}}
	nested, err := Nested(env, args, path, true)
	if err != nil {
		return nil, err
	}
	return append(out, nested...), nil
}

// Update implements spec.md §4.1.2.
func Update(env Env, path domain.Path, args domain.CoolArgs, previousValues map[string]interface{}) ([]domain.Mutaction, error) {
	nonList, list := args.Split(domain.UpdateMode)
	out := []domain.Mutaction{{
		Kind:           domain.UpdateDataItem,
		ProjectID:      env.ProjectID,
		Path:           path,
		NonListArgs:    nonList,
		ListArgs:       list,
		PreviousValues: previousValues,
	}}
	updatedRoot := UpdatedRoot(path, args)
	nested, err := Nested(env, args, updatedRoot, false)
	if err != nil {
		return nil, err
	}
	return append(out, nested...), nil
}

// UpdatedRoot replaces the root selector's value if args contain a new
// value for the selector's field, so subsequent NodeEdges keep
// referring to the post-update identity (spec.md §4.1.2).
func UpdatedRoot(path domain.Path, args domain.CoolArgs) domain.Path {
	return path.WithRoot(domain.CurrentWhere(path.Root(), args))
}

// Upsert implements spec.md §4.1.3. Nested expansion of either branch
// is intentionally suppressed — see spec.md §9 / DESIGN.md "Open
// question: suppressed nested expansion under Upsert".
func Upsert(env Env, path domain.Path, createWhere, updatedWhere domain.NodeSelector, createArgs, updateArgs domain.CoolArgs) ([]domain.Mutaction, error) {
	createNonList, createList := createArgs.Split(domain.CreateMode)
	updateNonList, updateList := updateArgs.Split(domain.UpdateMode)
	return []domain.Mutaction{{
		Kind:          domain.UpsertDataItem,
		ProjectID:     env.ProjectID,
		Path:          path,
		CreateWhere:   createWhere,
		UpdatedWhere:  updatedWhere,
		CreateNonList: createNonList,
		CreateList:    createList,
		UpdateNonList: updateNonList,
		UpdateList:    updateList,
	}}, nil
}

// Delete implements spec.md §4.1.4.
func Delete(env Env, path domain.Path, previousValues map[string]interface{}) ([]domain.Mutaction, error) {
	out := []domain.Mutaction{{
		Kind:      domain.VerifyWhere,
		ProjectID: env.ProjectID,
		Path:      path,
		Selector:  path.Root(),
	}}

	cascades, err := cascade.Resolve(env.Schema, env.ProjectID, path)
	if err != nil {
		return nil, err
	}
	out = append(out, cascades...)

	out = append(out,
		domain.Mutaction{Kind: domain.DeleteRelationCheck, ProjectID: env.ProjectID, Path: path},
		domain.Mutaction{Kind: domain.DeleteDataItem, ProjectID: env.ProjectID, Path: path, PreviousValues: previousValues},
	)
	return out, nil
}
