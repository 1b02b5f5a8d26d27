package cliargs

import (
	"encoding/json"
	"fmt"

	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
)

// nestedDoc is the on-disk shape of one relation field's nested
// mutation group. Disconnect and Delete are raw so they can carry
// either addressing shape spec.md §3 documents: a bare boolean for a
// ByRelation child on a to-one relation (`{disconnect: true}`), or an
// array of selectors for ByWhere children on a to-many relation
// (`{disconnect: [{id: "p1"}]}`).
type nestedDoc struct {
	Create     []json.RawMessage `json:"create,omitempty"`
	Connect    []selectorDoc     `json:"connect,omitempty"`
	Disconnect json.RawMessage   `json:"disconnect,omitempty"`
	Delete     json.RawMessage   `json:"delete,omitempty"`
	Update     []updateDoc       `json:"update,omitempty"`
	Upsert     []upsertDoc       `json:"upsert,omitempty"`
}

// selectorDoc is a single-key {field: value} object identifying one
// node, e.g. {"id": "p1"}.
type selectorDoc map[string]interface{}

func (s selectorDoc) toSelector(model schema.Model) (domain.NodeSelector, error) {
	if len(s) != 1 {
		return domain.NodeSelector{}, fmt.Errorf("cliargs: selector on %q must have exactly one field, got %d", model.Name, len(s))
	}
	for k, v := range s {
		return domain.NodeSelector{Model: model, Field: k, Value: v}, nil
	}
	panic("unreachable")
}

// addressedChildren decodes raw (a nestedDoc.Disconnect or .Delete
// field) into one entry per child: nil for a ByRelation child (the bare
// `true` shape), or the selectorDoc of each ByWhere child in the array
// shape (resolved against the model later by the caller). A bare `false` (or absent field) yields no children.
func addressedChildren(raw json.RawMessage) ([]*selectorDoc, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		if !flag {
			return nil, nil
		}
		return []*selectorDoc{nil}, nil
	}
	var arr []selectorDoc
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("cliargs: expected boolean or selector array, got %s", raw)
	}
	out := make([]*selectorDoc, len(arr))
	for i := range arr {
		sel := arr[i]
		out[i] = &sel
	}
	return out, nil
}

type updateDoc struct {
	Where *selectorDoc    `json:"where,omitempty"`
	Data  json.RawMessage `json:"data"`
}

type upsertDoc struct {
	Where  *selectorDoc    `json:"where,omitempty"`
	Create json.RawMessage `json:"create"`
	Update json.RawMessage `json:"update"`
}

// ParseCoolArgs decodes raw into a domain.CoolArgs for model, resolving
// relation fields against sch to recurse into nested payloads. This is
// the CLI harness's stand-in for spec.md §6's "argument coercer"
// collaborator, the already-typed input tree the planner itself only
// ever consumes.
func ParseCoolArgs(sch schema.Schema, model schema.Model, raw json.RawMessage) (domain.CoolArgs, error) {
	args := domain.NewCoolArgs()
	if len(raw) == 0 {
		return args, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return args, fmt.Errorf("cliargs: decoding args for %q: %w", model.Name, err)
	}

	for _, f := range model.Fields {
		raw, present := fields[f.Name]
		if !present {
			continue
		}
		if !f.IsRelation() {
			var v interface{}
			if err := json.Unmarshal(raw, &v); err != nil {
				return args, fmt.Errorf("cliargs: field %q on %q: %w", f.Name, model.Name, err)
			}
			if f.IsList {
				args.Lists[f.Name] = v
			} else {
				args.Scalars[f.Name] = v
			}
			continue
		}

		related, err := sch.ModelByName(f.RelatedModel)
		if err != nil {
			return args, fmt.Errorf("cliargs: relation field %q on %q: %w", f.Name, model.Name, err)
		}

		var doc nestedDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return args, fmt.Errorf("cliargs: nested mutation for %q on %q: %w", f.Name, model.Name, err)
		}

		nested, err := doc.toNestedMutations(sch, related)
		if err != nil {
			return args, err
		}
		args.Nested[f.Name] = nested
	}

	return args, nil
}

func (d nestedDoc) toNestedMutations(sch schema.Schema, related schema.Model) (domain.NestedMutations, error) {
	var out domain.NestedMutations

	for _, c := range d.Create {
		data, err := ParseCoolArgs(sch, related, c)
		if err != nil {
			return out, err
		}
		out.Creates = append(out.Creates, domain.CreateChild{Data: data})
	}
	for _, s := range d.Connect {
		sel, err := s.toSelector(related)
		if err != nil {
			return out, err
		}
		out.Connects = append(out.Connects, domain.ConnectChild{Where: sel})
	}
	disconnects, err := addressedChildren(d.Disconnect)
	if err != nil {
		return out, err
	}
	for _, s := range disconnects {
		if s == nil {
			out.Disconnects = append(out.Disconnects, domain.DisconnectChild{Addressing: domain.ByRelation})
			continue
		}
		sel, err := s.toSelector(related)
		if err != nil {
			return out, err
		}
		out.Disconnects = append(out.Disconnects, domain.DisconnectChild{Addressing: domain.ByWhere, Where: sel})
	}
	deletes, err := addressedChildren(d.Delete)
	if err != nil {
		return out, err
	}
	for _, s := range deletes {
		if s == nil {
			out.Deletes = append(out.Deletes, domain.DeleteChild{Addressing: domain.ByRelation})
			continue
		}
		sel, err := s.toSelector(related)
		if err != nil {
			return out, err
		}
		out.Deletes = append(out.Deletes, domain.DeleteChild{Addressing: domain.ByWhere, Where: sel})
	}
	for _, u := range d.Update {
		data, err := ParseCoolArgs(sch, related, u.Data)
		if err != nil {
			return out, err
		}
		child := domain.UpdateChild{Data: data}
		if u.Where != nil {
			sel, err := u.Where.toSelector(related)
			if err != nil {
				return out, err
			}
			child.Addressing = domain.ByWhere
			child.Where = sel
		}
		out.Updates = append(out.Updates, child)
	}
	for _, u := range d.Upsert {
		create, err := ParseCoolArgs(sch, related, u.Create)
		if err != nil {
			return out, err
		}
		update, err := ParseCoolArgs(sch, related, u.Update)
		if err != nil {
			return out, err
		}
		child := domain.UpsertChild{Create: create, Update: update}
		if u.Where != nil {
			sel, err := u.Where.toSelector(related)
			if err != nil {
				return out, err
			}
			child.Addressing = domain.ByWhere
			child.Where = sel
		}
		out.Upserts = append(out.Upserts, child)
	}

	return out, nil
}
