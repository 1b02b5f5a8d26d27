package domain

// ArgsMode selects which split rules CoolArgs.Split applies — create
// mode treats every present field (including list fields) as an
// insert value, update mode only includes fields the caller actually
// set (partial update semantics).
type ArgsMode int

const (
	CreateMode ArgsMode = iota
	UpdateMode
)

// CoolArgs is the typed input map for one model — the planner's view
// of an already-coerced GraphQL input object (spec.md §1(c) places
// argument coercion itself out of scope; CoolArgs consumes its
// output).
type CoolArgs struct {
	// Scalars holds non-list, non-relation field values keyed by field
	// name.
	Scalars map[string]interface{}
	// Lists holds scalar-list field values keyed by field name.
	Lists map[string]interface{}
	// Nested holds, per relation field name, the nested mutation payload
	// supplied for that field.
	Nested map[string]NestedMutations
}

// NewCoolArgs returns an empty CoolArgs ready to be populated.
func NewCoolArgs() CoolArgs {
	return CoolArgs{
		Scalars: map[string]interface{}{},
		Lists:   map[string]interface{}{},
		Nested:  map[string]NestedMutations{},
	}
}

// Split divides the args into (nonList, list) maps appropriate for the
// given mode. Create mode returns every scalar present; update mode
// returns only fields that were actually supplied (CoolArgs already
// only carries supplied fields, so the two modes currently coincide —
// the split exists because the executor's CreateDataItem/UpdateDataItem
// mutactions take the two maps as distinct arguments per spec.md §6).
func (a CoolArgs) Split(mode ArgsMode) (nonList map[string]interface{}, list map[string]interface{}) {
	nonList = make(map[string]interface{}, len(a.Scalars))
	for k, v := range a.Scalars {
		nonList[k] = v
	}
	list = make(map[string]interface{}, len(a.Lists))
	for k, v := range a.Lists {
		list[k] = v
	}
	return nonList, list
}

// SubNestedMutation returns the nested-mutation payload for relation
// field name, or the zero (empty) NestedMutations when none was
// supplied.
func (a CoolArgs) SubNestedMutation(field string) NestedMutations {
	return a.Nested[field]
}

// GenerateNonListCreateArgs merges sel's (field, value) pair into a
// copy of the non-list create args, injecting the freshly-minted ID
// (or other selector key) into the arg map that will become the row.
func GenerateNonListCreateArgs(nonList map[string]interface{}, sel NodeSelector) map[string]interface{} {
	out := make(map[string]interface{}, len(nonList)+1)
	for k, v := range nonList {
		out[k] = v
	}
	out[sel.Field] = sel.Value
	return out
}

// NestedMutations is the per-relation-field grouping of nested
// create/connect/disconnect/delete/update/upsert fragments supplied
// for one relation field of one CoolArgs.
type NestedMutations struct {
	Creates     []CreateChild
	Connects    []ConnectChild
	Disconnects []DisconnectChild
	Deletes     []DeleteChild
	Updates     []UpdateChild
	Upserts     []UpsertChild
}

// IsEmpty reports whether no nested fragment of any kind was supplied
// — the Nested(...) expander contributes nothing for an empty group
// (spec.md §8 round-trip law).
func (n NestedMutations) IsEmpty() bool {
	return len(n.Creates) == 0 && len(n.Connects) == 0 && len(n.Disconnects) == 0 &&
		len(n.Deletes) == 0 && len(n.Updates) == 0 && len(n.Upserts) == 0
}

// HasCreateLike reports whether the group contains a create or
// connect — the only two child kinds able to satisfy a required
// outbound relation from a freshly created parent (spec.md §4.2,
// "Required-relation check").
func (n NestedMutations) HasCreateLike() bool {
	return len(n.Creates) > 0 || len(n.Connects) > 0
}

// CreateChild is one `create` fragment nested under a relation field.
type CreateChild struct {
	Data CoolArgs
}

// ConnectChild is one `connect` fragment: a selector for an existing
// node to link.
type ConnectChild struct {
	Where NodeSelector
}

// DisconnectChild is one `disconnect` fragment. Addressing is either
// ByWhere (an explicit selector, used on to-many relations) or
// ByRelation (the single related node reached structurally, used on
// to-one relations) — spec.md §3.
type DisconnectChild struct {
	Addressing Addressing
	Where      NodeSelector // meaningful only when Addressing == ByWhere
}

// DeleteChild is one `delete` fragment. Addressing is either ByWhere
// or ByRelation, same as DisconnectChild.
type DeleteChild struct {
	Addressing Addressing
	Where      NodeSelector // meaningful only when Addressing == ByWhere
}

// UpdateChild is one `update` fragment. Addressing is either ByWhere
// (an explicit selector, used on to-many relations) or ByRelation
// (the single related node reached structurally, used on to-one
// relations) — spec.md §4.2.5.
type UpdateChild struct {
	Addressing Addressing
	Where      NodeSelector // meaningful only when Addressing == ByWhere
	Data       CoolArgs
}

// UpsertChild is one `upsert` fragment.
type UpsertChild struct {
	Addressing Addressing
	Where      NodeSelector // meaningful only when Addressing == ByWhere
	Create     CoolArgs
	Update     CoolArgs
}

// Addressing distinguishes a nested child identified by an explicit
// where-selector from one identified purely by its position in the
// relation graph.
type Addressing int

const (
	ByRelation Addressing = iota
	ByWhere
)

// CurrentWhere returns where with its value replaced by
// data.Scalars[where.Field] when present — this reflects an identity
// change that the same update/upsert will perform (spec.md §4.2.5).
func CurrentWhere(where NodeSelector, data CoolArgs) NodeSelector {
	if v, ok := data.Scalars[where.Field]; ok {
		return where.WithValue(v)
	}
	return where
}
