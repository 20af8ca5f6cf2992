package category

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var (
	// hierarchy & uniqueness messages
	errSelfParent     = "a category cannot be its own parent"
	errParentNotFound = "parent category not found"
	errParentIsSub    = "a subcategory cannot be a parent category"
	errParentHasSubs  = "a category with subcategories cannot become a subcategory"
	errSlugExists     = "a category with this slug already exists"
)

type (
	Repository interface {
		Create(ctx context.Context, cat Category) (Category, error)
		Get(ctx context.Context, id string) (Category, error)
		FindOne(ctx context.Context, filter core.Filter) (Category, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]Category, error)
		Count(ctx context.Context, filter core.Filter) (int64, error)
		Update(ctx context.Context, cat Category) (Category, error)
		Delete(ctx context.Context, id string) error
	}

	// DependencyChecker guards category deletion.
	DependencyChecker interface {
		CanDeleteCategory(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, data Input) (View, error)
		// ListWithHierarchy returns the categories newest first, each carrying its direct subcategories.
		ListWithHierarchy(ctx context.Context, filter QueryFilter) ([]View, error)
		GetByID(ctx context.Context, id string) (Category, error)
		Retrieve(ctx context.Context, cat Category) (View, error)
		Update(ctx context.Context, cat Category, data Input) (View, error)
		Delete(ctx context.Context, id string) error
		// ResolveParent returns the parent a category identified by selfID may be attached to.
		ResolveParent(ctx context.Context, parentID, selfID string) (Category, error)
		CheckSlugUniqueness(ctx context.Context, slug string, exclCats ...Category) error
	}

	service struct {
		repo    Repository
		checker DependencyChecker
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, checker DependencyChecker) Service {
	return &service{repo: repo, checker: checker}
}

func NewRepository(db core.DocumentStore) Repository {
	return core.NewCollection[Category](db, core.CategoryCollection, "category")
}

func (svc *service) ResolveParent(ctx context.Context, parentID, selfID string) (Category, error) {
	if parentID == selfID {
		return Category{}, core.NewRuleError(core.InvalidHierarchy, "parentId", errSelfParent)
	}
	parent, err := svc.repo.Get(ctx, parentID)
	if err != nil {
		if core.IsNotFound(err) {
			return Category{}, core.NewRuleError(core.InvalidHierarchy, "parentId", errParentNotFound)
		}
		return Category{}, errors.Wrap(err, "finding parent category")
	}
	// one level of nesting only
	if parent.IsSubcategory() {
		return Category{}, core.NewRuleError(core.InvalidHierarchy, "parentId", errParentIsSub)
	}
	return parent, nil
}

func (svc *service) CheckSlugUniqueness(ctx context.Context, slug string, exclCats ...Category) error {
	cat, err := svc.repo.FindOne(ctx, core.Filter{"slug": core.Slugify(slug)})
	if err != nil {
		if core.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "finding category by slug")
	}
	for _, excl := range exclCats {
		if excl.ID == cat.ID {
			return nil
		}
	}
	return core.NewRuleError(core.DuplicateSlug, "slug", errSlugExists)
}

func (svc *service) Create(ctx context.Context, data Input) (View, error) {
	data.Clean()
	if err := svc.CheckSlugUniqueness(ctx, data.Slug); err != nil {
		return View{}, err
	}

	now := core.Now()
	cat := Category{
		ID:          core.NewID(),
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Status:      data.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	view := View{Subcategories: []Category{}}
	if data.ParentID != "" {
		parent, err := svc.ResolveParent(ctx, data.ParentID, cat.ID)
		if err != nil {
			return View{}, err
		}
		cat.ParentID = parent.ID
		view.Parent = parent.Ref()
	}

	cat, err := svc.repo.Create(ctx, cat)
	if err != nil {
		return View{}, err
	}
	view.Category = cat
	return view, nil
}

func (svc *service) ListWithHierarchy(ctx context.Context, filter QueryFilter) ([]View, error) {
	cats, err := svc.repo.Query(ctx, core.Filter{})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Category, len(cats))
	children := make(map[string][]Category)
	for _, cat := range cats {
		byID[cat.ID] = cat
		if cat.IsSubcategory() {
			children[cat.ParentID] = append(children[cat.ParentID], cat)
		}
	}

	views := make([]View, 0, len(cats))
	for _, cat := range cats {
		if !filter.matches(cat) {
			continue
		}
		view := View{Category: cat, Subcategories: children[cat.ID]}
		if view.Subcategories == nil {
			view.Subcategories = []Category{}
		}
		if parent, ok := byID[cat.ParentID]; ok {
			view.Parent = parent.Ref()
		}
		views = append(views, view)
	}
	return views, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Category, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) Retrieve(ctx context.Context, cat Category) (View, error) {
	view := View{Category: cat}

	subs, err := svc.repo.Query(ctx, core.Filter{"parentId": cat.ID})
	if err != nil {
		return View{}, err
	}
	view.Subcategories = subs

	if cat.IsSubcategory() {
		parent, err := svc.repo.Get(ctx, cat.ParentID)
		switch {
		case err == nil:
			view.Parent = parent.Ref()
		case !core.IsNotFound(err):
			return View{}, errors.Wrap(err, "finding parent category")
		}
	}
	return view, nil
}

func (svc *service) Update(ctx context.Context, cat Category, data Input) (View, error) {
	data.Clean()
	if err := svc.CheckSlugUniqueness(ctx, data.Slug, cat); err != nil {
		return View{}, err
	}

	if data.ParentID != "" && data.ParentID != cat.ParentID {
		if _, err := svc.ResolveParent(ctx, data.ParentID, cat.ID); err != nil {
			return View{}, err
		}
		nSubs, err := svc.repo.Count(ctx, core.Filter{"parentId": cat.ID})
		if err != nil {
			return View{}, err
		}
		if nSubs > 0 {
			return View{}, core.NewRuleError(core.InvalidHierarchy, "parentId", errParentHasSubs)
		}
	}

	cat.Name = data.Name
	cat.Slug = data.Slug
	cat.Description = data.Description
	cat.ParentID = data.ParentID
	cat.Status = data.Status
	cat.UpdatedAt = core.Now()

	cat, err := svc.repo.Update(ctx, cat)
	if err != nil {
		return View{}, err
	}
	return svc.Retrieve(ctx, cat)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := svc.checker.CanDeleteCategory(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
