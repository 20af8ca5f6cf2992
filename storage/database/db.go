package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
	inmemdb "github.com/trezcool/contentadmin/storage/database/inmem"
	"github.com/trezcool/contentadmin/storage/database/mongodb"
	"github.com/trezcool/contentadmin/storage/database/postgres"
)

// Open connects to the document store selected by conf.Database.Engine.
func Open(ctx context.Context, conf *core.Config) (core.DocumentStore, error) {
	switch conf.Database.Engine {
	case core.EngineMongoDB:
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.EnginePostgres:
		db, err := postgres.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.EngineMemory:
		return inmemdb.NewDB(), nil
	default:
		return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}
