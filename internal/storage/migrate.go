package storage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaMigrator applies the trials/trial_turns schema migrations embedded
// in this package against a SQLite results database.
type SchemaMigrator struct {
	migrate *migrate.Migrate
}

// NewMigrationManager builds a SchemaMigrator for the SQLite database at
// dbPath, sourcing migrations from the embedded migrations/*.sql files.
func NewMigrationManager(dbPath string) (*SchemaMigrator, error) {
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsDir, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	databaseURL := fmt.Sprintf("sqlite://%s", sqliteDatabaseURLPath(dbPath))
	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return &SchemaMigrator{migrate: m}, nil
}

// sqliteDatabaseURLPath normalizes dbPath for use as a sqlite:// URL path:
// backslashes become forward slashes, and an absolute path gets a leading
// slash so it isn't mistaken for a relative one.
func sqliteDatabaseURLPath(dbPath string) string {
	normalized := filepath.ToSlash(dbPath)
	if filepath.IsAbs(dbPath) && normalized[0] != '/' {
		normalized = "/" + normalized
	}
	return normalized
}

// Up applies every pending trial-schema migration.
func (sm *SchemaMigrator) Up() error {
	if err := sm.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recently applied migration.
func (sm *SchemaMigrator) Down() error {
	if err := sm.migrate.Down(); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// Steps applies n migrations; a positive n moves forward, negative back.
func (sm *SchemaMigrator) Steps(n int) error {
	if err := sm.migrate.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate %d steps: %w", n, err)
	}
	return nil
}

// Version reports the schema's current migration version and dirty state.
func (sm *SchemaMigrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = sm.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Goto migrates the schema directly to the given version.
func (sm *SchemaMigrator) Goto(version uint) error {
	if err := sm.migrate.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate to version %d: %w", version, err)
	}
	return nil
}

// Force sets the recorded migration version without running any migration,
// for recovering a database left in a dirty state by a failed migration.
func (sm *SchemaMigrator) Force(version int) error {
	if err := sm.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the migrator's source and database handles.
func (sm *SchemaMigrator) Close() error {
	srcErr, dbErr := sm.migrate.Close()
	if srcErr != nil {
		return fmt.Errorf("failed to close source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
