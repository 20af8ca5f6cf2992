package cms

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var errSlugExists = "a page with this slug already exists"

type (
	Repository interface {
		Create(ctx context.Context, p Page) (Page, error)
		Get(ctx context.Context, id string) (Page, error)
		FindOne(ctx context.Context, filter core.Filter) (Page, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Page, error)
		Update(ctx context.Context, p Page) (Page, error)
		Delete(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, data Input) (Page, error)
		Query(ctx context.Context) ([]Page, error)
		// GetByIDOrSlug resolves a page by ID first, then by slug.
		GetByIDOrSlug(ctx context.Context, key string) (Page, error)
		Update(ctx context.Context, p Page, data Input) (Page, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func NewRepository(db core.DocumentStore) Repository {
	return core.NewCollection[Page](db, core.CMSPageCollection, "page")
}

func (svc *service) checkSlugUniqueness(ctx context.Context, slug string, exclPages ...Page) error {
	p, err := svc.repo.FindOne(ctx, core.Filter{"slug": slug})
	if err != nil {
		if core.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "finding page by slug")
	}
	for _, excl := range exclPages {
		if excl.ID == p.ID {
			return nil
		}
	}
	return core.NewRuleError(core.DuplicateSlug, "slug", errSlugExists)
}

func (svc *service) Create(ctx context.Context, data Input) (Page, error) {
	data.Clean()
	if err := svc.checkSlugUniqueness(ctx, data.Slug); err != nil {
		return Page{}, err
	}

	now := core.Now()
	p := Page{
		ID:        core.NewID(),
		Title:     data.Title,
		Slug:      data.Slug,
		Content:   data.Content,
		Status:    data.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.Create(ctx, p)
}

func (svc *service) Query(ctx context.Context) ([]Page, error) {
	return svc.repo.Query(ctx, core.Filter{})
}

func (svc *service) GetByIDOrSlug(ctx context.Context, key string) (Page, error) {
	p, err := svc.repo.Get(ctx, key)
	if err == nil || !core.IsNotFound(err) {
		return p, err
	}
	return svc.repo.FindOne(ctx, core.Filter{"slug": core.Slugify(key)})
}

func (svc *service) Update(ctx context.Context, p Page, data Input) (Page, error) {
	data.Clean()
	if err := svc.checkSlugUniqueness(ctx, data.Slug, p); err != nil {
		return Page{}, err
	}
	p.Title = data.Title
	p.Slug = data.Slug
	p.Content = data.Content
	p.Status = data.Status
	p.UpdatedAt = core.Now()
	return svc.repo.Update(ctx, p)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
