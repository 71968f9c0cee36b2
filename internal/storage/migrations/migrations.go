package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

//go:embed files/*.sql
var migrationFiles embed.FS

const defaultMigrationsTable = "schema_migrations"

// Up applies all pending migrations. It returns nil when the schema is already current.
func Up(dsn, migrationsTable string) error {
	m, db, err := newMigrate(dsn, migrationsTable)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Down rolls back the given number of migrations.
func Down(dsn, migrationsTable string, steps int) error {
	m, db, err := newMigrate(dsn, migrationsTable)
	if err != nil {
		return err
	}
	defer db.Close()

	if steps <= 0 {
		steps = 1
	}

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}

// Version reports the current schema version and whether the last migration failed.
func Version(dsn, migrationsTable string) (uint, bool, error) {
	m, db, err := newMigrate(dsn, migrationsTable)
	if err != nil {
		return 0, false, err
	}
	defer db.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get database version: %w", err)
	}

	return version, dirty, nil
}

func newMigrate(dsn, migrationsTable string) (*migrate.Migrate, *sql.DB, error) {
	if migrationsTable == "" {
		migrationsTable = defaultMigrationsTable
	}

	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid dsn: %w", err)
	}
	db := sql.OpenDB(connector)

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "files")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to read migration files: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, db, nil
}
