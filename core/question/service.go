package question

import (
	"context"

	"github.com/trezcool/contentadmin/core"
)

type (
	Repository interface {
		Create(ctx context.Context, q Question) (Question, error)
		Get(ctx context.Context, id string) (Question, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Question, error)
		Update(ctx context.Context, q Question) (Question, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
	}

	Service interface {
		// Create records authorID as the question's creator.
		Create(ctx context.Context, authorID string, data Input) (Question, error)
		Query(ctx context.Context, filter QueryFilter) ([]Question, error)
		GetByID(ctx context.Context, id string) (Question, error)
		Update(ctx context.Context, q Question, data Input) (Question, error)
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
	return core.NewCollection[Question](db, core.QuestionCollection, "question")
}

func (svc *service) Create(ctx context.Context, authorID string, data Input) (Question, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID); err != nil {
		return Question{}, err
	}

	now := core.Now()
	q := Question{ID: core.NewID(), CreatedBy: authorID, CreatedAt: now}
	q.apply(data, now)
	return svc.repo.Create(ctx, q)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Question, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (Question, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Update(ctx context.Context, q Question, data Input) (Question, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID); err != nil {
		return Question{}, err
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
