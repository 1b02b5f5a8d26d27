package expander

import (
	"github.com/satishbabariya/mutaplan/internal/core/planner/cascade"
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// Nested implements spec.md §4.2: for every relation field on path's
// last model not already on the path, expand that field's nested
// mutation group (if any) into where-probes, connection-probes, the
// create-like group, then the other group, in that exact order.
func Nested(env Env, args domain.CoolArgs, path domain.Path, triggeredFromCreate bool) ([]domain.Mutaction, error) {
	var out []domain.Mutaction

	for _, f := range path.RelationFieldsNotOnPathOnLastModel(env.Schema.InverseFieldName) {
		sub := args.SubNestedMutation(f.Name)
		if triggeredFromCreate && f.IsRequired && !sub.HasCreateLike() {
			return nil, domain.NewRelationRequiredError(f.Name, path.LastModel().Name)
		}
		if sub.IsEmpty() {
			continue
		}

		related, err := env.Schema.RelatedModel(f)
		if err != nil {
			return nil, err
		}

		// 1. Where-probes: every NestedWhere child among
		// updates ∪ deletes ∪ connects ∪ disconnects.
		for _, u := range sub.Updates {
			if u.Addressing == domain.ByWhere {
				out = append(out, verifyWhere(env, u.Where))
			}
		}
		for _, d := range sub.Deletes {
			if d.Addressing == domain.ByWhere {
				out = append(out, verifyWhere(env, d.Where))
			}
		}
		for _, c := range sub.Connects {
			out = append(out, verifyWhere(env, c.Where))
		}
		for _, d := range sub.Disconnects {
			if d.Addressing == domain.ByWhere {
				out = append(out, verifyWhere(env, d.Where))
			}
		}

		// 2. Connection-probes: updates ∪ deletes ∪ disconnects, pinned
		// to the specific related node each ByWhere child targets; a
		// ByRelation child probes the bare structural edge instead.
		for _, u := range sub.Updates {
			out = append(out, verifyConnection(env, connectionEdge(path, f, related, u.Addressing, u.Where)))
		}
		for _, d := range sub.Deletes {
			out = append(out, verifyConnection(env, connectionEdge(path, f, related, d.Addressing, d.Where)))
		}
		for _, d := range sub.Disconnects {
			out = append(out, verifyConnection(env, connectionEdge(path, f, related, d.Addressing, d.Where)))
		}

		// 3. Create-like group: creates then connects.
		for _, c := range sub.Creates {
			mutactions, err := nestedCreate(env, path, f, related, c, triggeredFromCreate)
			if err != nil {
				return nil, err
			}
			out = append(out, mutactions...)
		}
		for _, c := range sub.Connects {
			ep := path.Extend(f, related).LastEdgeToNodeEdge(c.Where)
			out = append(out, domain.Mutaction{
				Kind:        domain.NestedConnectRelation,
				ProjectID:   env.ProjectID,
				Path:        ep,
				TopIsCreate: triggeredFromCreate,
			})
		}

		// 4. Other group: disconnects, deletes, updates, upserts.
		for _, d := range sub.Disconnects {
			ep := connectionEdge(path, f, related, d.Addressing, d.Where)
			out = append(out, domain.Mutaction{Kind: domain.NestedDisconnectRelation, ProjectID: env.ProjectID, Path: ep})
		}
		for _, d := range sub.Deletes {
			ep := connectionEdge(path, f, related, d.Addressing, d.Where)
			cascades, err := cascade.Resolve(env.Schema, env.ProjectID, ep)
			if err != nil {
				return nil, err
			}
			out = append(out, cascades...)
			out = append(out,
				domain.Mutaction{Kind: domain.DeleteRelationCheck, ProjectID: env.ProjectID, Path: ep},
				domain.Mutaction{Kind: domain.DeleteDataItemNested, ProjectID: env.ProjectID, Path: ep},
			)
		}
		for _, u := range sub.Updates {
			mutactions, err := nestedUpdate(env, path, f, related, u)
			if err != nil {
				return nil, err
			}
			out = append(out, mutactions...)
		}
		for _, u := range sub.Upserts {
			out = append(out, nestedUpsert(env, path, f, related, u))
		}
	}

	return out, nil
}

func verifyWhere(env Env, sel domain.NodeSelector) domain.Mutaction {
	return domain.Mutaction{Kind: domain.VerifyWhere, ProjectID: env.ProjectID, Selector: sel}
}

func verifyConnection(env Env, p domain.Path) domain.Mutaction {
	return domain.Mutaction{Kind: domain.VerifyConnection, ProjectID: env.ProjectID, Path: p}
}

// connectionEdge resolves the path a connection-probe or write
// mutaction should carry for a relation child: a NodeEdge pinned to
// where for a ByWhere child, or the bare ModelEdge for a ByRelation
// child (the structurally-reached single related node).
func connectionEdge(path domain.Path, f schema.Field, related schema.Model, addressing domain.Addressing, where domain.NodeSelector) domain.Path {
	ep := path.Extend(f, related)
	if addressing == domain.ByWhere {
		return ep.LastEdgeToNodeEdge(where)
	}
	return ep
}

// nestedCreate implements spec.md §4.2.1.
func nestedCreate(env Env, path domain.Path, f schema.Field, related schema.Model, child domain.CreateChild, triggeredFromCreate bool) ([]domain.Mutaction, error) {
	newID := env.IDs.NewID()
	createWhere := domain.ForID(related, newID)
	extendedPath := path.Extend(f, related).LastEdgeToNodeEdge(createWhere)

	nonList, list := child.Data.Split(domain.CreateMode)
	nonList = domain.GenerateNonListCreateArgs(nonList, createWhere)

	out := []domain.Mutaction{
		{Kind: domain.CreateDataItem, ProjectID: env.ProjectID, Path: extendedPath, NonListArgs: nonList, ListArgs: list},
		{Kind: domain.NestedCreateRelation, ProjectID: env.ProjectID, Path: extendedPath, TopIsCreate: triggeredFromCreate},
	}

	recursed, err := Nested(env, child.Data, extendedPath, true)
	if err != nil {
		return nil, err
	}
	return append(out, recursed...), nil
}

// nestedUpdate implements spec.md §4.2.5.
func nestedUpdate(env Env, path domain.Path, f schema.Field, related schema.Model, child domain.UpdateChild) ([]domain.Mutaction, error) {
	ep := path.Extend(f, related)
	var updatedPath domain.Path
	if child.Addressing == domain.ByWhere {
		ep = ep.LastEdgeToNodeEdge(child.Where)
		updatedPath = ep.LastEdgeToNodeEdge(domain.CurrentWhere(child.Where, child.Data))
	} else {
		updatedPath = ep
	}

	nonList, list := child.Data.Split(domain.UpdateMode)
	out := []domain.Mutaction{
		{Kind: domain.NestedUpdateDataItem, ProjectID: env.ProjectID, Path: ep, NonListArgs: nonList, ListArgs: list},
	}

	recursed, err := Nested(env, child.Data, updatedPath, false)
	if err != nil {
		return nil, err
	}
	return append(out, recursed...), nil
}

// nestedUpsert implements spec.md §4.2.6. Nested expansion of either
// branch is intentionally suppressed — see spec.md §9 / DESIGN.md
// "Open question: suppressed nested expansion under Upsert".
func nestedUpsert(env Env, path domain.Path, f schema.Field, related schema.Model, child domain.UpsertChild) domain.Mutaction {
	ep := path.Extend(f, related)

	newID := env.IDs.NewID()
	createWhere := domain.ForID(related, newID)
	createNonList, createList := child.Create.Split(domain.CreateMode)
	createNonList = domain.GenerateNonListCreateArgs(createNonList, createWhere)
	updateNonList, updateList := child.Update.Split(domain.UpdateMode)

	finalPath := ep
	if child.Addressing == domain.ByWhere {
		finalPath = ep.LastEdgeToNodeEdge(domain.CurrentWhere(child.Where, child.Update))
	}

	return domain.Mutaction{
		Kind:                domain.UpsertDataItemIfInRelationWith,
		ProjectID:           env.ProjectID,
		Path:                ep,
		CreateWhere:         createWhere,
		CreateNonList:       createNonList,
		CreateList:          createList,
		UpdateNonList:       updateNonList,
		UpdateList:          updateList,
		PathForUpdateBranch: finalPath,
	}
}
