package settings

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var ErrAlreadyExists = errors.New("site settings already exist")

type (
	Repository interface {
		Create(ctx context.Context, s Settings) (Settings, error)
		Get(ctx context.Context, id string) (Settings, error)
		Update(ctx context.Context, s Settings) (Settings, error)
	}

	Service interface {
		Get(ctx context.Context) (Settings, error)
		// Create fails with a ValidationError when the settings already exist.
		Create(ctx context.Context, data Input) (Settings, error)
		// Upsert updates the settings, creating them first if needed.
		Upsert(ctx context.Context, data Input) (Settings, error)
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
	return core.NewCollection[Settings](db, core.SettingsCollection, "site settings")
}

func (svc *service) Get(ctx context.Context) (Settings, error) {
	return svc.repo.Get(ctx, SingletonID)
}

func (svc *service) Create(ctx context.Context, data Input) (Settings, error) {
	if _, err := svc.repo.Get(ctx, SingletonID); err == nil {
		return Settings{}, core.NewValidationError(ErrAlreadyExists)
	} else if !core.IsNotFound(err) {
		return Settings{}, errors.Wrap(err, "getting site settings")
	}

	data.Clean()
	now := core.Now()
	s := Settings{ID: SingletonID, CreatedAt: now}
	s.apply(data, now)
	return svc.repo.Create(ctx, s)
}

func (svc *service) Upsert(ctx context.Context, data Input) (Settings, error) {
	s, err := svc.repo.Get(ctx, SingletonID)
	if err != nil {
		if core.IsNotFound(err) {
			return svc.Create(ctx, data)
		}
		return Settings{}, errors.Wrap(err, "getting site settings")
	}

	data.Clean()
	s.apply(data, core.Now())
	return svc.repo.Update(ctx, s)
}
