// Package db opens the posts database and bootstraps its schema for
// development and tests.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"postboard/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// sqlDriver maps the configured driver to the database/sql driver name.
func sqlDriver(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported driver %q", driver)
}

// Open returns a verified connection pool. The caller owns it and must
// Close it.
func Open(ctx context.Context, c config.DB) (*sql.DB, error) {
	name, err := sqlDriver(c.Driver)
	if err != nil {
		return nil, err
	}
	pool, err := sql.Open(name, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}
	if c.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(c.MaxOpenConns)
	}
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded schema for driver. migrate.ErrNoChange is
// returned untouched so callers can tell an up-to-date schema apart.
func Migrate(pool *sql.DB, driver string) error {
	var (
		instance database.Driver
		err      error
	)
	switch driver {
	case config.DriverPostgres:
		instance, err = migratepgx.WithInstance(pool, &migratepgx.Config{})
	case config.DriverSQLite:
		instance, err = sqlite.WithInstance(pool, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return err
	}
	return m.Up()
}

// IsNoChange reports whether err only says the schema is already current.
func IsNoChange(err error) bool {
	return errors.Is(err, migrate.ErrNoChange)
}
