package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
	"github.com/SscSPs/six_jars_app/internal/platform/config"
	"github.com/SscSPs/six_jars_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/six_jars_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/six_jars_app/internal/repositories/memory"
	"github.com/SscSPs/six_jars_app/internal/repositories/storage/gcs"
	"github.com/SscSPs/six_jars_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// openSnapshotStore builds the repositories for the configured driver. The returned
// cleanup releases whatever the driver opened.
func openSnapshotStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repositories.RepositoryProvider{}, noop, fmt.Errorf("initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			dbPool.Close()
			return repositories.RepositoryProvider{}, noop, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	case config.StoreDriverGCS:
		repo, err := gcs.NewSnapshotRepository(ctx, cfg.GCSBucket)
		if err != nil {
			return repositories.RepositoryProvider{}, noop, err
		}
		logger.Info("Using GCS snapshot store", slog.String("bucket", cfg.GCSBucket))
		return gcs.NewRepositoryProvider(repo), func() {
			if err := repo.Close(); err != nil {
				logger.Error("Error closing storage client", slog.String("error", err.Error()))
			}
		}, nil

	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return repositories.RepositoryProvider{}, noop, err
		}
		logger.Info("Using SQLite snapshot store", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil

	default:
		logger.Warn("Using in-memory snapshot store; ledgers are lost on restart")
		return memory.NewRepositoryProvider(), noop, nil
	}
}

// runMigrations applies every pending migration under ./migrations.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
