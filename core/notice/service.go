package notice

import (
	"context"

	"github.com/trezcool/contentadmin/core"
)

// ordering puts sticky notices first, newest first within each group.
var ordering = []core.DBOrdering{
	{Field: "isSticky", Ascending: false},
	{Field: "createdAt", Ascending: false},
}

type (
	Repository interface {
		Create(ctx context.Context, n Notice) (Notice, error)
		Get(ctx context.Context, id string) (Notice, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Notice, error)
		Update(ctx context.Context, n Notice) (Notice, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
	}

	Service interface {
		// Create records authorID as the notice's author.
		Create(ctx context.Context, authorID string, data Input) (Notice, error)
		Query(ctx context.Context, filter QueryFilter) ([]Notice, error)
		GetByID(ctx context.Context, id string) (Notice, error)
		// View returns the notice after counting one more view of it.
		View(ctx context.Context, n Notice) (Notice, error)
		Update(ctx context.Context, n Notice, data Input) (Notice, error)
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
	return core.NewCollection[Notice](db, core.NoticeCollection, "notice")
}

func (svc *service) Create(ctx context.Context, authorID string, data Input) (Notice, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, ""); err != nil {
		return Notice{}, err
	}

	now := core.Now()
	n := Notice{ID: core.NewID(), Author: authorID, CreatedAt: now}
	n.apply(data, now)
	return svc.repo.Create(ctx, n)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Notice, error) {
	return svc.repo.Query(ctx, filter.toFilter(), ordering...)
}

func (svc *service) GetByID(ctx context.Context, id string) (Notice, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) View(ctx context.Context, n Notice) (Notice, error) {
	n.ViewCount++
	return svc.repo.Update(ctx, n)
}

func (svc *service) Update(ctx context.Context, n Notice, data Input) (Notice, error) {
	data.Clean()
	if err := svc.checker.CheckCategoryReferences(ctx, data.CategoryID, ""); err != nil {
		return Notice{}, err
	}
	n.apply(data, core.Now())
	return svc.repo.Update(ctx, n)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
