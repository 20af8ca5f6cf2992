package testutil

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/user"
	logsvc "github.com/trezcool/contentadmin/services/logger"
	inmemdb "github.com/trezcool/contentadmin/storage/database/inmem"
)

const SecretKey = "test-secret-key"

// NewConfig returns a TEST config backed by the in-memory store.
func NewConfig() *core.Config {
	conf := &core.Config{
		AppName:   "Content Admin",
		Env:       "TEST",
		Build:     "test",
		TestMode:  true,
		SecretKey: SecretKey,
	}
	conf.Server.Host = "localhost"
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.JWTRefreshExpirationDelta = 24 * time.Hour
	conf.Server.DisableReqLogs = true
	conf.Database.Engine = core.EngineMemory
	conf.Seed.AdminName = "Admin User"
	conf.Seed.AdminEmail = "admin@example.com"
	conf.Seed.AdminPassword = "password"
	return conf
}

func NewStore() core.DocumentStore {
	return inmemdb.NewDB()
}

func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(io.Discard, conf)
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role, status string,
	createdAt ...time.Time,
) user.User {
	tstamp := core.Now()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC().Truncate(time.Millisecond)
	}
	usr := user.User{
		ID:        core.NewID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    status,
		Avatar:    user.DefaultAvatar(name),
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.Create(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}
