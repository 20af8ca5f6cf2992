package course

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var errSlugExists = "a course with this slug already exists"

type (
	Repository interface {
		Create(ctx context.Context, c Course) (Course, error)
		Get(ctx context.Context, id string) (Course, error)
		FindOne(ctx context.Context, filter core.Filter) (Course, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Course, error)
		Update(ctx context.Context, c Course) (Course, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
	}

	Service interface {
		Create(ctx context.Context, data Input) (Course, error)
		Query(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
		Update(ctx context.Context, c Course, data Input) (Course, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo    Repository
		checker ReferenceChecker
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, checker ReferenceChecker) Service {
	return &service{repo: repo, checker: checker}
}

func NewRepository(db core.DocumentStore) Repository {
	return core.NewCollection[Course](db, core.CourseCollection, "course")
}

func (svc *service) checkReferences(ctx context.Context, data Input, exclCourses ...Course) error {
	c, err := svc.repo.FindOne(ctx, core.Filter{"slug": data.Slug})
	switch {
	case err == nil:
		taken := true
		for _, excl := range exclCourses {
			if excl.ID == c.ID {
				taken = false
			}
		}
		if taken {
			return core.NewRuleError(core.DuplicateSlug, "slug", errSlugExists)
		}
	case !core.IsNotFound(err):
		return errors.Wrap(err, "finding course by slug")
	}
	return svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID)
}

func (svc *service) Create(ctx context.Context, data Input) (Course, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data); err != nil {
		return Course{}, err
	}

	now := core.Now()
	c := Course{ID: core.NewID(), CreatedAt: now}
	c.apply(data, now)
	return svc.repo.Create(ctx, c)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Course, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Update(ctx context.Context, c Course, data Input) (Course, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data, c); err != nil {
		return Course{}, err
	}
	c.apply(data, core.Now())
	return svc.repo.Update(ctx, c)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
