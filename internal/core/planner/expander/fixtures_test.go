package expander

import (
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	schema "github.com/satishbabariya/mutaplan/internal/core/schema/domain"
	corereader "github.com/satishbabariya/mutaplan/internal/core/schema"
)

// fakeIDs hands out deterministic, sequential IDs so golden-vector
// tests can assert exact mutaction sequences (spec.md §8 invariant 6).
type fakeIDs struct {
	next int
	ids  []string
}

func (f *fakeIDs) NewID() string {
	if f.next < len(f.ids) {
		id := f.ids[f.next]
		f.next++
		return id
	}
	id := "cuid-auto"
	f.next++
	return id
}

func newEnv(sch schema.Schema, ids ...string) (Env, *fakeIDs) {
	gen := &fakeIDs{ids: ids}
	return Env{
		ProjectID: "proj1",
		Schema:    corereader.NewReader(sch),
		IDs:       gen,
	}, gen
}

// userPostSchema builds a minimal two-model schema: User 1-to-many
// Post via a non-required "posts" field, inverse "author".
func userPostSchema() schema.Schema {
	post := schema.Model{
		Name: "Post",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{Name: "title", IsRequired: true},
			{Name: "author", IsRequired: false, RelatedModel: "User", InverseField: "posts"},
		},
	}
	user := schema.Model{
		Name: "User",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{Name: "name", IsRequired: true},
			{Name: "posts", IsRequired: false, IsList: true, RelatedModel: "Post", InverseField: "author"},
		},
	}
	return schema.Schema{Models: []schema.Model{user, post}}
}

// profileUserSchema builds Profile --(required)--> User, the
// required-relation failure fixture (S3).
func profileUserSchema() schema.Schema {
	user := schema.Model{
		Name: "User",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
		},
	}
	profile := schema.Model{
		Name: "Profile",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{Name: "bio", IsRequired: false},
			{Name: "user", IsRequired: true, RelatedModel: "User", InverseField: "profile"},
		},
	}
	return schema.Schema{Models: []schema.Model{profile, user}}
}

// authorBookChapterSchema builds Author -(cascade)-> Book -(cascade)-> Chapter,
// the cascading-delete fixture (S5).
func authorBookChapterSchema() schema.Schema {
	chapter := schema.Model{
		Name: "Chapter",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{
				Name: "book", IsRequired: false, RelatedModel: "Book", InverseField: "chapters",
			},
		},
	}
	book := schema.Model{
		Name: "Book",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{
				Name: "author", IsRequired: false, RelatedModel: "Author", InverseField: "books",
			},
			{
				Name: "chapters", IsRequired: false, IsList: true, RelatedModel: "Chapter", InverseField: "book",
				Relation: &schema.Relation{Name: "BookChapters", OnDeleteNear: schema.Cascade, RelationType: schema.OneToMany},
			},
		},
	}
	author := schema.Model{
		Name: "Author",
		Fields: []schema.Field{
			{Name: "id", IsRequired: true},
			{
				Name: "books", IsRequired: false, IsList: true, RelatedModel: "Book", InverseField: "author",
				Relation: &schema.Relation{Name: "AuthorBooks", OnDeleteNear: schema.Cascade, RelationType: schema.OneToMany},
			},
		},
	}
	return schema.Schema{Models: []schema.Model{author, book, chapter}}
}

func mustModel(s schema.Schema, name string) schema.Model {
	m, err := s.ModelByName(name)
	if err != nil {
		panic(err)
	}
	return m
}

func rootPath(model schema.Model, id interface{}) domain.Path {
	return domain.NewPath(domain.ForID(model, id), model)
}

func mustRelationField(m schema.Model, name string) schema.Field {
	f, ok := m.FieldByName(name)
	if !ok {
		panic("no such field: " + name)
	}
	return f
}
