// Package database opens the configured SQL backend and applies the
// embedded goose migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"bookstore/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// OpenPostgres creates a pgx pool and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	logger.Info("database connection OK", zap.String("driver", driverPostgres), zap.String("dsn", RedactDSN(dsn)))
	return pool, nil
}

// OpenSQLite opens a modernc sqlite database and applies connection pragmas.
// SQLite serialises writers, and every ":memory:" connection is its own
// database, so the pool is capped at one connection.
func OpenSQLite(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	sqlDB, err := sql.Open(driverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, stmt := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply %q: %w", stmt, err)
		}
	}
	logger.Info("database connection OK", zap.String("driver", driverSQLite), zap.String("dsn", dsn))
	return sqlDB, nil
}

// MigrationsFS returns the embedded migrations and goose dialect for driver.
func MigrationsFS(driver string) (fs.FS, goose.Dialect, error) {
	var dialect goose.Dialect
	switch driver {
	case driverPostgres:
		dialect = goose.DialectPostgres
	case driverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, "", fmt.Errorf("unsupported driver %q", driver)
	}
	sub, err := fs.Sub(db.Migrations, "migrations/"+driver)
	if err != nil {
		return nil, "", fmt.Errorf("migrations for %s: %w", driver, err)
	}
	return sub, dialect, nil
}

// NewMigrator builds a goose provider over the embedded migrations.
func NewMigrator(driver string, sqlDB *sql.DB) (*goose.Provider, error) {
	fsys, dialect, err := MigrationsFS(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, driver string, sqlDB *sql.DB, logger *zap.Logger) error {
	provider, err := NewMigrator(driver, sqlDB)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, res := range results {
		logger.Info("migration applied",
			zap.Int64("version", res.Source.Version),
			zap.String("path", res.Source.Path),
			zap.Duration("duration", res.Duration),
		)
	}
	return nil
}

// RedactDSN hides the credentials part of a URL style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
