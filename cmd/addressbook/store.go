package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/config"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/filestore"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/postgres"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/sqlite"
)

func openStore(ctx context.Context, c config.StorageConfig, log *zap.Logger) (internal.Store, error) {
	switch c.Driver {
	case config.DriverFile:
		return filestore.New(c.Path, log), nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, c.Path, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, c.URL, log)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
