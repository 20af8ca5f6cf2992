package mcq

import (
	"context"

	"github.com/trezcool/contentadmin/core"
)

type (
	Repository interface {
		Create(ctx context.Context, m MCQ) (MCQ, error)
		Get(ctx context.Context, id string) (MCQ, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]MCQ, error)
		Update(ctx context.Context, m MCQ) (MCQ, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
		CanDeleteMCQ(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, data Input) (MCQ, error)
		Query(ctx context.Context, filter QueryFilter) ([]MCQ, error)
		GetByID(ctx context.Context, id string) (MCQ, error)
		Update(ctx context.Context, m MCQ, data Input) (MCQ, error)
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
	return core.NewCollection[MCQ](db, core.MCQCollection, "mcq")
}

func (svc *service) Create(ctx context.Context, data Input) (MCQ, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID); err != nil {
		return MCQ{}, err
	}

	now := core.Now()
	m := MCQ{ID: core.NewID(), CreatedAt: now}
	m.apply(data, now)
	return svc.repo.Create(ctx, m)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]MCQ, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (MCQ, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Update(ctx context.Context, m MCQ, data Input) (MCQ, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID); err != nil {
		return MCQ{}, err
	}
	m.apply(data, core.Now())
	return svc.repo.Update(ctx, m)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := svc.checker.CanDeleteMCQ(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
