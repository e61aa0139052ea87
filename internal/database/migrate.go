package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	up      string
}

func loadMigrations() ([]migration, error) {
	files, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var migrations []migration

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(f.Name(), "%d_", &version); err != nil {
			return nil, fmt.Errorf("invalid migration filename %s: %w", f.Name(), err)
		}

		data, err := migrationsFS.ReadFile("migrations/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", f.Name(), err)
		}

		migrations = append(migrations, migration{version: version, name: f.Name(), up: string(data)})
	}

	slices.SortFunc(migrations, func(a, b migration) int {
		return a.version - b.version
	})

	return migrations, nil
}

// Migrate applies every embedded migration newer than the recorded schema
// version, in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version: %w", err)
	}

	var current int

	err = tx.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&current)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initialising schema_version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("reading schema_version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if _, err := tx.ExecContext(ctx, m.up); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.name, err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE schema_version SET version = $1`, m.version); err != nil {
			return fmt.Errorf("updating schema_version: %w", err)
		}

		current = m.version
	}

	return tx.Commit()
}
