// Package integrity holds the cross-collection reference checks run before deletes & saves.
//
// By default only the hierarchy is guarded: a category with subcategories cannot be deleted.
// In strict mode every reference is guarded both ways: referenced documents cannot be deleted
// and saves pointing to missing documents are rejected.
package integrity

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

type Checker struct {
	db     core.DocumentStore
	strict bool
}

func NewChecker(db core.DocumentStore, strict bool) *Checker {
	return &Checker{db: db, strict: strict}
}

func (chk *Checker) count(ctx context.Context, collection string, filter core.Filter) (int64, error) {
	n, err := chk.db.Count(ctx, collection, filter)
	return n, errors.Wrapf(err, "counting %s", collection)
}

func (chk *Checker) exists(ctx context.Context, collection, id string) (bool, error) {
	n, err := chk.count(ctx, collection, core.Filter{"id": id})
	return n > 0, err
}

// CanDeleteCategory fails with HasDependents while subcategories point to the category.
// In strict mode, content referencing the category blocks the delete as well.
func (chk *Checker) CanDeleteCategory(ctx context.Context, id string) error {
	n, err := chk.count(ctx, core.CategoryCollection, core.Filter{"parentId": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return core.NewRuleError(core.HasDependents, "", "category has subcategories")
	}
	if !chk.strict {
		return nil
	}

	for _, coll := range core.ContentCollections {
		for _, field := range []string{"categoryId", "subcategoryId"} {
			n, err := chk.count(ctx, coll, core.Filter{field: id})
			if err != nil {
				return err
			}
			if n > 0 {
				return core.NewRuleError(core.HasDependents, "", fmt.Sprintf("category is referenced by %s", coll))
			}
		}
	}
	return nil
}

// CanDeleteUser allows every delete unless strict: authored content keeps a dangling reference otherwise.
func (chk *Checker) CanDeleteUser(ctx context.Context, id string) error {
	if !chk.strict {
		return nil
	}
	refs := []struct{ collection, field string }{
		{core.NewsCollection, "author"},
		{core.NoticeCollection, "author"},
		{core.QuestionCollection, "createdBy"},
	}
	for _, ref := range refs {
		n, err := chk.count(ctx, ref.collection, core.Filter{ref.field: id})
		if err != nil {
			return err
		}
		if n > 0 {
			return core.NewRuleError(core.HasDependents, "", fmt.Sprintf("user is referenced by %s", ref.collection))
		}
	}
	return nil
}

// CanDeleteMCQ blocks, in strict mode only, deleting an MCQ used by a quiz.
func (chk *Checker) CanDeleteMCQ(ctx context.Context, id string) error {
	if !chk.strict {
		return nil
	}
	n, err := chk.count(ctx, core.QuizCollection, core.Filter{"questions": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return core.NewRuleError(core.HasDependents, "", "mcq is referenced by quizzes")
	}
	return nil
}

// CheckMCQReferences verifies, in strict mode only, that every quiz question exists.
func (chk *Checker) CheckMCQReferences(ctx context.Context, ids []string) error {
	if !chk.strict {
		return nil
	}
	for _, id := range ids {
		ok, err := chk.exists(ctx, core.MCQCollection, id)
		if err != nil {
			return err
		}
		if !ok {
			msg := fmt.Sprintf("mcq %s not found", id)
			return core.NewValidationError(errors.New(msg), core.FieldError{Field: "questions", Error: msg})
		}
	}
	return nil
}

// CheckCategoryReferences verifies, in strict mode only, that the referenced categories exist.
func (chk *Checker) CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error {
	if !chk.strict {
		return nil
	}
	refs := []struct{ field, id string }{
		{"categoryId", categoryID},
		{"subcategoryId", subcategoryID},
	}
	for _, ref := range refs {
		if ref.id == "" {
			continue
		}
		ok, err := chk.exists(ctx, core.CategoryCollection, ref.id)
		if err != nil {
			return err
		}
		if !ok {
			msg := "category not found"
			return core.NewValidationError(errors.New(msg), core.FieldError{Field: ref.field, Error: msg})
		}
	}
	return nil
}
