package domain

import (
	"testing"

	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userModel() schema.Model {
	return schema.Model{
		Name: "User",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{Name: "posts", RelatedModel: "Post", InverseField: "author", IsList: true},
			{Name: "profile", RelatedModel: "Profile", InverseField: "user"},
		},
	}
}

func postModel() schema.Model {
	return schema.Model{
		Name: "Post",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{Name: "author", RelatedModel: "User", InverseField: "posts"},
		},
	}
}

func TestPath(t *testing.T) {
	user := userModel()
	post := postModel()
	postsField, _ := user.FieldByName("posts")

	t.Run("LastModel is root model when empty", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user)
		assert.Equal(t, "User", p.LastModel().Name)
		assert.Equal(t, 0, p.Len())
	})

	t.Run("Extend appends a ModelEdge", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user)
		extended := p.Extend(postsField, post)

		assert.Equal(t, 0, p.Len(), "original path must not mutate")
		assert.Equal(t, 1, extended.Len())
		assert.Equal(t, "Post", extended.LastModel().Name)

		field, ok := extended.LastEdgeField()
		require.True(t, ok)
		assert.Equal(t, "posts", field.Name)
	})

	t.Run("LastEdgeToNodeEdge pins the trailing edge", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user).Extend(postsField, post)
		sel := ForID(post, "p1")
		pinned := p.LastEdgeToNodeEdge(sel)

		edges := pinned.Edges()
		require.Len(t, edges, 1)
		assert.Equal(t, NodeEdgeKind, edges[0].Kind)
		assert.Equal(t, sel, edges[0].Selector)

		// The un-pinned path is untouched.
		assert.Equal(t, ModelEdgeKind, p.Edges()[0].Kind)
	})

	t.Run("RemoveLastEdge pops the trailing edge", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user).Extend(postsField, post)
		popped := p.RemoveLastEdge()
		assert.Equal(t, 0, popped.Len())
		assert.Equal(t, "User", popped.LastModel().Name)
	})

	t.Run("RemoveLastEdge panics on an empty path", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user)
		assert.Panics(t, func() { p.RemoveLastEdge() })
	})

	t.Run("WithRoot replaces only the root selector", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user).Extend(postsField, post)
		updated := p.WithRoot(ForID(user, "u2"))
		assert.Equal(t, "u2", updated.Root().Value)
		assert.Equal(t, 1, updated.Len())
	})

	t.Run("RelationFieldsNotOnPathOnLastModel excludes the inverse field", func(t *testing.T) {
		p := NewPath(ForID(user, "u1"), user).Extend(postsField, post)
		inverseOf := func(f schema.Field) string { return f.InverseField }

		fields := p.RelationFieldsNotOnPathOnLastModel(inverseOf)
		for _, f := range fields {
			assert.NotEqual(t, "author", f.Name, "should exclude the inverse of the edge just taken")
		}
	})

	t.Run("Equal compares structurally", func(t *testing.T) {
		a := NewPath(ForID(user, "u1"), user).Extend(postsField, post).LastEdgeToNodeEdge(ForID(post, "p1"))
		b := NewPath(ForID(user, "u1"), user).Extend(postsField, post).LastEdgeToNodeEdge(ForID(post, "p1"))
		c := NewPath(ForID(user, "u1"), user).Extend(postsField, post).LastEdgeToNodeEdge(ForID(post, "p2"))

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}

func TestCurrentWhere(t *testing.T) {
	user := userModel()
	where := ForID(user, "u1")

	t.Run("replaces the value when args touch the selector field", func(t *testing.T) {
		args := NewCoolArgs()
		args.Scalars["id"] = "u2"
		got := CurrentWhere(where, args)
		assert.Equal(t, "u2", got.Value)
	})

	t.Run("leaves the selector untouched otherwise", func(t *testing.T) {
		args := NewCoolArgs()
		args.Scalars["name"] = "A"
		got := CurrentWhere(where, args)
		assert.Equal(t, "u1", got.Value)
	})
}
