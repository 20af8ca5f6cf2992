package quiz

import (
	"context"

	"github.com/trezcool/contentadmin/core"
)

type (
	Repository interface {
		Create(ctx context.Context, q Quiz) (Quiz, error)
		Get(ctx context.Context, id string) (Quiz, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Quiz, error)
		Update(ctx context.Context, q Quiz) (Quiz, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
		CheckMCQReferences(ctx context.Context, ids []string) error
	}

	Service interface {
		Create(ctx context.Context, data Input) (Quiz, error)
		Query(ctx context.Context, filter QueryFilter) ([]Quiz, error)
		GetByID(ctx context.Context, id string) (Quiz, error)
		Update(ctx context.Context, q Quiz, data Input) (Quiz, error)
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
	return core.NewCollection[Quiz](db, core.QuizCollection, "quiz")
}

func (svc *service) checkReferences(ctx context.Context, data Input) error {
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID); err != nil {
		return err
	}
	return svc.checker.CheckMCQReferences(ctx, data.Questions)
}

func (svc *service) Create(ctx context.Context, data Input) (Quiz, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data); err != nil {
		return Quiz{}, err
	}

	now := core.Now()
	q := Quiz{ID: core.NewID(), CreatedAt: now}
	q.apply(data, now)
	return svc.repo.Create(ctx, q)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Quiz, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (Quiz, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Update(ctx context.Context, q Quiz, data Input) (Quiz, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data); err != nil {
		return Quiz{}, err
	}
	q.apply(data, core.Now())
	return svc.repo.Update(ctx, q)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
