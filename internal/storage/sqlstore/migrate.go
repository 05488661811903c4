package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

func (s *Storage) migrationProvider() (*goose.Provider, error) {
	var dialect goose.Dialect

	switch s.driver {
	case config.DriverPostgres:
		dialect = goose.DialectPostgres
	case config.DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("no migrations for driver %q", s.driver)
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+s.driver)
	if err != nil {
		return nil, err
	}

	return goose.NewProvider(dialect, s.DB, fsys)
}

// Migrate applies all pending schema migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.sqlstore.Migrate"

	provider, err := s.migrationProvider()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MigrateDown rolls back the most recent migration.
func (s *Storage) MigrateDown(ctx context.Context) error {
	const op = "storage.sqlstore.MigrateDown"

	provider, err := s.migrationProvider()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = provider.Down(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

func (s *Storage) MigrationStatus(ctx context.Context) ([]MigrationStatus, error) {
	const op = "storage.sqlstore.MigrationStatus"

	provider, err := s.migrationProvider()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	statuses := make([]MigrationStatus, 0, len(results))
	for _, r := range results {
		statuses = append(statuses, MigrationStatus{
			Version: r.Source.Version,
			Path:    r.Source.Path,
			Applied: r.State == goose.StateApplied,
		})
	}

	return statuses, nil
}
