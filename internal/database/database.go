package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/rental/store"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Open builds the repository selected by cfg.Storage.Driver. The returned
// close func releases whatever connection the backend holds.
func Open(ctx context.Context, cfg *config.Config) (rental.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		repo := store.NewPostgres(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return repo, db.Close, nil

	case config.DriverSQLite:
		repo, err := store.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		return repo, repo.Close, nil

	case config.DriverFile, "":
		var opts []store.FileOption

		if cfg.Storage.Key != "" {
			sealer, err := store.NewSealer(cfg.Storage.Key)
			if err != nil {
				return nil, nil, err
			}

			opts = append(opts, store.WithSealer(sealer))
		}

		repo, err := store.NewFile(cfg.Storage.DataDir, opts...)
		if err != nil {
			return nil, nil, err
		}

		return repo, noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
