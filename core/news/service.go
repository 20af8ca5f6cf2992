package news

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var errSlugExists = "a news article with this slug already exists"

type (
	Repository interface {
		Create(ctx context.Context, n News) (News, error)
		Get(ctx context.Context, id string) (News, error)
		FindOne(ctx context.Context, filter core.Filter) (News, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]News, error)
		Update(ctx context.Context, n News) (News, error)
		Delete(ctx context.Context, id string) error
	}

	ReferenceChecker interface {
		CheckCategoryReferences(ctx context.Context, categoryID, subcategoryID string) error
	}

	Service interface {
		// Create records authorID as the article's author.
		Create(ctx context.Context, authorID string, data Input) (News, error)
		Query(ctx context.Context, filter QueryFilter) ([]News, error)
		GetByID(ctx context.Context, id string) (News, error)
		Update(ctx context.Context, n News, data Input) (News, error)
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
	return core.NewCollection[News](db, core.NewsCollection, "news")
}

func (svc *service) checkSlugUniqueness(ctx context.Context, slug string, exclNews ...News) error {
	n, err := svc.repo.FindOne(ctx, core.Filter{"slug": slug})
	if err != nil {
		if core.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "finding news by slug")
	}
	for _, excl := range exclNews {
		if excl.ID == n.ID {
			return nil
		}
	}
	return core.NewRuleError(core.DuplicateSlug, "slug", errSlugExists)
}

func (svc *service) checkReferences(ctx context.Context, data Input, exclNews ...News) error {
	if err := svc.checkSlugUniqueness(ctx, data.Slug, exclNews...); err != nil {
		return err
	}
	return svc.checker.CheckCategoryReferences(ctx, data.CategoryID, data.SubcategoryID)
}

func (svc *service) Create(ctx context.Context, authorID string, data Input) (News, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data); err != nil {
		return News{}, err
	}

	now := core.Now()
	n := News{ID: core.NewID(), Author: authorID, CreatedAt: now}
	n.apply(data, now)
	return svc.repo.Create(ctx, n)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]News, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (News, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Update(ctx context.Context, n News, data Input) (News, error) {
	data.Clean()
	if err := svc.checkReferences(ctx, data, n); err != nil {
		return News{}, err
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
