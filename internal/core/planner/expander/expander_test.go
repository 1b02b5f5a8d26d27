package expander

import (
	"testing"

	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: a create with no relations emits exactly one CreateDataItem.
func TestCreate_NoRelations(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Scalars["name"] = "A"

	out, err := Create(env, rootPath(user, "u1"), args)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.CreateDataItem, out[0].Kind)
	assert.Equal(t, "A", out[0].NonListArgs["name"])
}

// S2: a create with a non-required nested create emits, in order, the
// parent create, the child create, and the NestedCreateRelation link.
func TestCreate_WithNestedCreate(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	env, _ := newEnv(sch, "cuid-post-1")

	postData := domain.NewCoolArgs()
	postData.Scalars["title"] = "T"

	args := domain.NewCoolArgs()
	args.Scalars["name"] = "A"
	args.Nested["posts"] = domain.NestedMutations{Creates: []domain.CreateChild{{Data: postData}}}

	out, err := Create(env, rootPath(user, "u1"), args)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, domain.CreateDataItem, out[0].Kind)
	assert.Equal(t, "A", out[0].NonListArgs["name"])

	assert.Equal(t, domain.CreateDataItem, out[1].Kind)
	assert.Equal(t, "T", out[1].NonListArgs["title"])
	assert.Equal(t, "cuid-post-1", out[1].NonListArgs["id"])

	assert.Equal(t, domain.NestedCreateRelation, out[2].Kind)
	assert.True(t, out[2].TopIsCreate)

	field, ok := out[2].Path.LastEdgeField()
	require.True(t, ok)
	assert.Equal(t, "posts", field.Name)
}

// S3: a create that fails to satisfy a required outbound relation
// fails with RelationIsRequired and returns no partial vector.
func TestCreate_RequiredRelationMissing(t *testing.T) {
	sch := profileUserSchema()
	profile := mustModel(sch, "Profile")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Scalars["bio"] = "x"

	out, err := Create(env, rootPath(profile, "pr1"), args)
	assert.Nil(t, out)
	require.Error(t, err)

	var relErr *domain.RelationRequiredError
	require.ErrorAs(t, err, &relErr)
	assert.Equal(t, "user", relErr.FieldName)
	assert.Equal(t, "Profile", relErr.ModelName)
}

// A required relation satisfied by connect (not create) must not fail.
func TestCreate_RequiredRelationSatisfiedByConnect(t *testing.T) {
	sch := profileUserSchema()
	profile := mustModel(sch, "Profile")
	user := mustModel(sch, "User")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Scalars["bio"] = "x"
	args.Nested["user"] = domain.NestedMutations{Connects: []domain.ConnectChild{{Where: domain.ForID(user, "u1")}}}

	out, err := Create(env, rootPath(profile, "pr1"), args)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, domain.CreateDataItem, out[0].Kind)
	assert.Equal(t, domain.VerifyWhere, out[1].Kind, "connect still gets a where-probe (spec.md §4.2 step 1)")
	assert.Equal(t, domain.NestedConnectRelation, out[2].Kind)
}

// S4: a top-level update with a nested delete-by-where emits
// UpdateDataItem, VerifyWhere, VerifyConnection, DeleteRelationCheck,
// DeleteDataItemNested, in that order.
func TestUpdate_WithNestedDelete(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	post := mustModel(sch, "Post")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Nested["posts"] = domain.NestedMutations{
		Deletes: []domain.DeleteChild{{Addressing: domain.ByWhere, Where: domain.ForID(post, "p1")}},
	}

	out, err := Update(env, rootPath(user, "u1"), args, nil)
	require.NoError(t, err)
	require.Len(t, out, 5)

	kinds := make([]domain.Kind, len(out))
	for i, m := range out {
		kinds[i] = m.Kind
	}
	assert.Equal(t, []domain.Kind{
		domain.UpdateDataItem,
		domain.VerifyWhere,
		domain.VerifyConnection,
		domain.DeleteRelationCheck,
		domain.DeleteDataItemNested,
	}, kinds)

	assert.Equal(t, domain.ForID(post, "p1"), out[1].Selector)

	// The VerifyConnection probe must be pinned to the specific related
	// node being probed (spec.md §8 scenario S4), not a bare ModelEdge
	// shared across every child of this relation field.
	wantPath := rootPath(user, "u1").Extend(mustRelationField(user, "posts"), post).LastEdgeToNodeEdge(domain.ForID(post, "p1"))
	assert.True(t, out[2].Path.Equal(wantPath))
}

// A disconnect/delete addressed ByRelation (a to-one relation reached
// structurally, no selector) gets no where-probe and its
// connection-probe/write mutactions carry the bare ModelEdge.
func TestUpdate_NestedDisconnectByRelation(t *testing.T) {
	sch := profileUserSchema()
	profile := mustModel(sch, "Profile")
	user := mustModel(sch, "User")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Nested["user"] = domain.NestedMutations{
		Disconnects: []domain.DisconnectChild{{Addressing: domain.ByRelation}},
	}

	out, err := Nested(env, args, rootPath(profile, "pr1"), false)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, domain.VerifyConnection, out[0].Kind)
	assert.Equal(t, domain.NestedDisconnectRelation, out[1].Kind)

	wantPath := rootPath(profile, "pr1").Extend(mustRelationField(profile, "user"), user)
	assert.True(t, out[0].Path.Equal(wantPath))
	assert.True(t, out[1].Path.Equal(wantPath))
}

// S5: deleting an Author cascades through Book->Chapter before
// Author->Book, then DeleteRelationCheck, then DeleteDataItem.
func TestDelete_Cascading(t *testing.T) {
	sch := authorBookChapterSchema()
	author := mustModel(sch, "Author")
	env, _ := newEnv(sch)

	out, err := Delete(env, rootPath(author, "a1"), map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	require.True(t, len(out) >= 4)
	assert.Equal(t, domain.VerifyWhere, out[0].Kind)

	last := out[len(out)-1]
	assert.Equal(t, domain.DeleteDataItem, last.Kind)
	secondToLast := out[len(out)-2]
	assert.Equal(t, domain.DeleteRelationCheck, secondToLast.Kind)

	middle := out[1 : len(out)-2]
	lastDepth := 99
	for _, m := range middle {
		assert.Equal(t, domain.CascadingDeleteRelationMutactions, m.Kind)
		assert.LessOrEqual(t, m.Path.Len(), lastDepth)
		lastDepth = m.Path.Len()
	}
}

// S6: upsert emits exactly one UpsertDataItem regardless of nested
// payloads on either branch — the suppressed-nested-expansion open
// question (spec.md §9 / DESIGN.md).
func TestUpsert_NoNestedExpansion(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	env, _ := newEnv(sch)

	postData := domain.NewCoolArgs()
	postData.Scalars["title"] = "T"

	createArgs := domain.NewCoolArgs()
	createArgs.Scalars["name"] = "A"
	createArgs.Nested["posts"] = domain.NestedMutations{Creates: []domain.CreateChild{{Data: postData}}}

	updateArgs := domain.NewCoolArgs()
	updateArgs.Scalars["name"] = "B"
	updateArgs.Nested["posts"] = domain.NestedMutations{Creates: []domain.CreateChild{{Data: postData}}}

	createWhere := domain.ForID(user, "u1")
	updatedWhere := domain.ForID(user, "u1")

	out, err := Upsert(env, rootPath(user, "u1"), createWhere, updatedWhere, createArgs, updateArgs)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.UpsertDataItem, out[0].Kind)
	assert.Equal(t, "A", out[0].CreateNonList["name"])
	assert.Equal(t, "B", out[0].UpdateNonList["name"])
}

func TestNested_EmptyPayloadIsEmptyVector(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	env, _ := newEnv(sch)

	out, err := Nested(env, domain.NewCoolArgs(), rootPath(user, "u1"), false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Where-probes and connection-probes for one relation field's group
// must all precede every write mutaction for that same group
// (spec.md §8 invariant 2).
func TestNested_ProbesPrecedeWrites(t *testing.T) {
	sch := userPostSchema()
	user := mustModel(sch, "User")
	post := mustModel(sch, "Post")
	env, _ := newEnv(sch)

	args := domain.NewCoolArgs()
	args.Nested["posts"] = domain.NestedMutations{
		Disconnects: []domain.DisconnectChild{{Addressing: domain.ByWhere, Where: domain.ForID(post, "p1")}},
		Deletes:     []domain.DeleteChild{{Addressing: domain.ByWhere, Where: domain.ForID(post, "p2")}},
	}

	out, err := Nested(env, args, rootPath(user, "u1"), false)
	require.NoError(t, err)

	firstWriteIdx := -1
	for i, m := range out {
		if m.Kind == domain.NestedDisconnectRelation || m.Kind == domain.DeleteDataItemNested {
			firstWriteIdx = i
			break
		}
	}
	require.NotEqual(t, -1, firstWriteIdx)

	for i, m := range out {
		if m.Kind == domain.VerifyWhere || m.Kind == domain.VerifyConnection {
			assert.Less(t, i, firstWriteIdx, "probe at %d must precede first write at %d", i, firstWriteIdx)
		}
	}
}
