package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(context.Context, *sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_workflow_schema",
		Up:      migrationV1,
	},
}

// InitSchema brings a database to the current schema and (re)seeds the stage
// and transition reference tables. Safe to run on every start.
func InitSchema(ctx context.Context, database *sql.DB, dialect Dialect) error {
	if err := RunMigrations(ctx, database, dialect); err != nil {
		return err
	}
	if err := SeedReferenceData(ctx, database, dialect); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations. Each migration and its
// schema_version row commit together.
func RunMigrations(ctx context.Context, database *sql.DB, dialect Dialect) error {
	_, err := database.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = database.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.ExecContext(ctx, dialect.Rebind("INSERT INTO schema_version (version) VALUES (?)"), migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(ctx context.Context, database *sql.DB) (int, error) {
	var v int
	err := database.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return v, nil
}

// LatestVersion returns the version the migrations bring a database to.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// migrationV1 creates the full workflow schema.
func migrationV1(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, SchemaSQL)
	return err
}
