package integrity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core"
	inmemdb "github.com/trezcool/contentadmin/storage/database/inmem"
)

type doc map[string]interface{}

func (d doc) GetID() string { return d["id"].(string) }

func seed(t *testing.T, db core.DocumentStore, collection string, docs ...doc) {
	for _, d := range docs {
		require.NoError(t, db.Insert(context.Background(), collection, d))
	}
}

func TestChecker(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.NewDB()

	seed(t, db, core.CategoryCollection,
		doc{"id": "web"},
		doc{"id": "front", "parentId": "web"},
		doc{"id": "design"},
		doc{"id": "empty"},
	)
	seed(t, db, core.MCQCollection, doc{"id": "q1", "categoryId": "design"})
	seed(t, db, core.QuizCollection, doc{"id": "quiz1", "questions": []string{"q1"}})
	seed(t, db, core.NewsCollection, doc{"id": "n1", "author": "u1"})

	lax, strict := NewChecker(db, false), NewChecker(db, true)

	t.Run("subcategories always block", func(t *testing.T) {
		for _, chk := range []*Checker{lax, strict} {
			assert.True(t, core.IsRule(chk.CanDeleteCategory(ctx, "web"), core.HasDependents))
			assert.NoError(t, chk.CanDeleteCategory(ctx, "empty"))
		}
	})

	t.Run("lax", func(t *testing.T) {
		assert.NoError(t, lax.CanDeleteCategory(ctx, "design"))
		assert.NoError(t, lax.CanDeleteUser(ctx, "u1"))
		assert.NoError(t, lax.CanDeleteMCQ(ctx, "q1"))
		assert.NoError(t, lax.CheckMCQReferences(ctx, []string{"lol"}))
		assert.NoError(t, lax.CheckCategoryReferences(ctx, "lol", "lol"))
	})

	t.Run("strict", func(t *testing.T) {
		err := strict.CanDeleteCategory(ctx, "design")
		assert.True(t, core.IsRule(err, core.HasDependents))
		assert.EqualError(t, err, "category is referenced by mcqs")

		assert.EqualError(t, strict.CanDeleteUser(ctx, "u1"), "user is referenced by news")
		assert.NoError(t, strict.CanDeleteUser(ctx, "u2"))

		assert.EqualError(t, strict.CanDeleteMCQ(ctx, "q1"), "mcq is referenced by quizzes")

		assert.NoError(t, strict.CheckMCQReferences(ctx, []string{"q1"}))
		assert.EqualError(t, strict.CheckMCQReferences(ctx, []string{"q1", "q2"}), "mcq q2 not found")

		assert.NoError(t, strict.CheckCategoryReferences(ctx, "web", "front"))
		assert.NoError(t, strict.CheckCategoryReferences(ctx, "", ""))
		err = strict.CheckCategoryReferences(ctx, "web", "lol")
		require.Error(t, err)
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok)
		assert.Equal(t, []core.FieldError{{Field: "subcategoryId", Error: "category not found"}}, vErr.Fields)
	})
}
