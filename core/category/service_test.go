package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/integrity"
	inmemdb "github.com/trezcool/contentadmin/storage/database/inmem"
)

func setup() (category.Service, category.Repository) {
	db := inmemdb.NewDB()
	repo := category.NewRepository(db)
	return category.NewService(repo, integrity.NewChecker(db, false)), repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	web, err := svc.Create(ctx, category.Input{Name: "Web Development"})
	require.NoError(t, err)
	assert.Equal(t, "web-development", web.Slug)
	assert.Equal(t, category.StatusActive, web.Status)
	assert.NotEmpty(t, web.ID)
	assert.Equal(t, []category.Category{}, web.Subcategories)

	front, err := svc.Create(ctx, category.Input{Name: "Frontend", Slug: "Front End!", ParentID: web.ID})
	require.NoError(t, err)
	assert.Equal(t, "front-end", front.Slug)
	assert.Equal(t, web.ID, front.ParentID)
	assert.Equal(t, &category.Ref{ID: web.ID, Name: web.Name, Slug: web.Slug}, front.Parent)

	tests := []struct {
		name string
		in   category.Input
		kind core.RuleKind
	}{
		{"duplicate slug", category.Input{Name: "web development"}, core.DuplicateSlug},
		{"unknown parent", category.Input{Name: "Mobile", ParentID: "lol"}, core.InvalidHierarchy},
		{"nested too deep", category.Input{Name: "React", ParentID: front.ID}, core.InvalidHierarchy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.True(t, core.IsRule(err, tt.kind), "got %v", err)
		})
	}
}

func TestService_ListWithHierarchy(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	web, err := svc.Create(ctx, category.Input{Name: "Web"})
	require.NoError(t, err)
	front, err := svc.Create(ctx, category.Input{Name: "Frontend", ParentID: web.ID})
	require.NoError(t, err)
	back, err := svc.Create(ctx, category.Input{Name: "Backend", ParentID: web.ID, Status: category.StatusInactive})
	require.NoError(t, err)

	views, err := svc.ListWithHierarchy(ctx, category.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, back.ID, views[0].ID)
	assert.Equal(t, web.ID, views[0].Parent.ID)
	assert.Equal(t, web.ID, views[2].ID)
	assert.Equal(t, []category.Category{back.Category, front.Category}, views[2].Subcategories)

	mains, err := svc.ListWithHierarchy(ctx, category.QueryFilter{Level: "MAIN"})
	require.NoError(t, err)
	require.Len(t, mains, 1)
	assert.Len(t, mains[0].Subcategories, 2)

	inactive, err := svc.ListWithHierarchy(ctx, category.QueryFilter{Level: category.LevelSub, Status: category.StatusInactive})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, back.ID, inactive[0].ID)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup()

	web, err := svc.Create(ctx, category.Input{Name: "Web"})
	require.NoError(t, err)
	design, err := svc.Create(ctx, category.Input{Name: "Design"})
	require.NoError(t, err)
	front, err := svc.Create(ctx, category.Input{Name: "Frontend", ParentID: web.ID})
	require.NoError(t, err)

	t.Run("self parent", func(t *testing.T) {
		in := category.NewInput(design.Category)
		in.ParentID = design.ID
		_, err := svc.Update(ctx, design.Category, in)
		assert.True(t, core.IsRule(err, core.InvalidHierarchy), "got %v", err)
	})

	t.Run("main with subcategories", func(t *testing.T) {
		in := category.NewInput(web.Category)
		in.ParentID = design.ID
		_, err := svc.Update(ctx, web.Category, in)
		assert.True(t, core.IsRule(err, core.InvalidHierarchy), "got %v", err)
	})

	t.Run("keep own slug", func(t *testing.T) {
		in := category.NewInput(design.Category)
		in.Description = "Pixels"
		view, err := svc.Update(ctx, design.Category, in)
		require.NoError(t, err)
		assert.Equal(t, "Pixels", view.Description)
		assert.True(t, view.UpdatedAt.After(design.UpdatedAt) || view.UpdatedAt.Equal(design.UpdatedAt))
	})

	t.Run("promote subcategory", func(t *testing.T) {
		in := category.NewInput(front.Category)
		in.ParentID = ""
		view, err := svc.Update(ctx, front.Category, in)
		require.NoError(t, err)
		assert.Nil(t, view.Parent)

		stored, err := repo.Get(ctx, front.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsSubcategory())
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup()

	web, err := svc.Create(ctx, category.Input{Name: "Web"})
	require.NoError(t, err)
	front, err := svc.Create(ctx, category.Input{Name: "Frontend", ParentID: web.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, web.ID)
	assert.True(t, core.IsRule(err, core.HasDependents), "got %v", err)

	assert.True(t, core.IsNotFound(svc.Delete(ctx, "lol")))

	require.NoError(t, svc.Delete(ctx, front.ID))
	require.NoError(t, svc.Delete(ctx, web.ID))

	n, err := repo.Count(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
