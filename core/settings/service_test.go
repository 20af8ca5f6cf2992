package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/settings"
	inmemdb "github.com/trezcool/contentadmin/storage/database/inmem"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.NewDB()
	svc := settings.NewService(settings.NewRepository(db))

	_, err := svc.Get(ctx)
	assert.True(t, core.IsNotFound(err))

	// upsert creates the singleton when missing
	created, err := svc.Upsert(ctx, settings.Input{SiteName: " Site ", ContactEmail: "A@B.cd"})
	require.NoError(t, err)
	assert.Equal(t, settings.SingletonID, created.ID)
	assert.Equal(t, "Site", created.SiteName)
	assert.Equal(t, "a@b.cd", created.ContactEmail)
	assert.Equal(t, settings.DefaultPrimaryColor, created.PrimaryColor)
	assert.Equal(t, []settings.Link{}, created.Footer.Links)

	_, err = svc.Create(ctx, settings.Input{SiteName: "Other"})
	assert.EqualError(t, err, settings.ErrAlreadyExists.Error())

	in := settings.NewInput(created)
	in.SiteName = "Renamed"
	updated, err := svc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.SiteName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	n, err := db.Count(ctx, core.SettingsCollection, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
