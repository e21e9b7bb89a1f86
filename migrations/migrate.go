// Package migrations holds the goose migrations for both sides of the
// application: the server's Postgres schema under postgres/ and the client's
// local SQLite vault schema under sqlite/.
//
// The sqlite migration filenames double as the vault version registry: each
// client migration is named <timestamp>_<major.minor.patch>-<description>.sql
// and the compatibility checker is seeded from exactly this list, so a schema
// change and the version it introduces can never drift apart.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// MigratePostgres applies the server schema migrations to db.
func MigratePostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "postgres"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// MigrateSQLite applies the client vault schema migrations to db.
func MigrateSQLite(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "sqlite"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// ClientVaultMigrations returns the embedded client migration filenames in
// application order. The list seeds the version compatibility registry and
// is stored verbatim in every snapshot the client seals.
func ClientVaultMigrations() ([]string, error) {
	entries, err := fs.ReadDir(embedMigrations, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("reading embedded client migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	// Timestamp prefixes make lexical order the application order.
	sort.Strings(names)

	return names, nil
}
