package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/integrity"
	"github.com/trezcool/contentadmin/core/settings"
	"github.com/trezcool/contentadmin/core/user"
	"github.com/trezcool/contentadmin/storage/seed"
	"github.com/trezcool/contentadmin/tests"
)

func TestDefaultData(t *testing.T) {
	data := seed.DefaultData()

	require.Len(t, data.Categories, 1)
	assert.Equal(t, "web-development", data.Categories[0].Slug)
	assert.Len(t, data.Categories[0].Subcategories, 2)
	assert.Equal(t, "Learning Platform", data.Settings.SiteName)
	assert.Equal(t, "#3B82F6", data.Settings.PrimaryColor)
	assert.Len(t, data.Settings.Footer.Links, 3)
}

func TestParse(t *testing.T) {
	_, err := seed.Parse([]byte("categories: {"))
	assert.Error(t, err)
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	db := testutil.NewStore()
	checker := integrity.NewChecker(db, false)

	usrSvc := user.NewService(user.NewRepository(db), checker)
	catSvc := category.NewService(category.NewRepository(db), checker)
	setSvc := settings.NewService(settings.NewRepository(db))
	seeder := seed.NewSeeder(conf, testutil.NewLogger(conf), usrSvc, catSvc, setSvc)

	// twice: the second run must not duplicate anything
	for i := 0; i < 2; i++ {
		require.NoError(t, seeder.Run(ctx, seed.DefaultData()))
	}

	admins, err := usrSvc.Query(ctx, user.QueryFilter{Role: user.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)
	assert.Equal(t, user.StatusActive, admins[0].Status)
	assert.NoError(t, admins[0].CheckPassword("password"))

	cats, err := catSvc.ListWithHierarchy(ctx, category.QueryFilter{Level: category.LevelMain})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Web Development", cats[0].Name)
	subSlugs := []string{cats[0].Subcategories[0].Slug, cats[0].Subcategories[1].Slug}
	assert.ElementsMatch(t, []string{"frontend", "backend"}, subSlugs)

	s, err := setSvc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "contact@example.com", s.ContactEmail)
	assert.Equal(t, "https://twitter.com/learningplatform", s.SocialLinks.Twitter)
	assert.Equal(t, "© 2023 Learning Platform. All rights reserved.", s.Footer.Copyright)
}

func TestSeeder_Run_keepsExistingCategories(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	db := testutil.NewStore()
	checker := integrity.NewChecker(db, false)

	catSvc := category.NewService(category.NewRepository(db), checker)
	_, err := catSvc.Create(ctx, category.Input{Name: "Design"})
	require.NoError(t, err)

	seeder := seed.NewSeeder(
		conf, testutil.NewLogger(conf),
		user.NewService(user.NewRepository(db), checker), catSvc, settings.NewService(settings.NewRepository(db)),
	)
	require.NoError(t, seeder.Run(ctx, seed.DefaultData()))

	cats, err := catSvc.ListWithHierarchy(ctx, category.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "design", cats[0].Slug)
}
