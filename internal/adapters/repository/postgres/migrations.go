package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Migrate applies every *.up.sql file in name order. Files are written to be
// idempotent, so running it on every start is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := execMigration(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// RunMigration executes the single migration file whose name ends in
// "<name>.<direction>.sql", direction being "up" or "down".
func RunMigration(ctx context.Context, db *sql.DB, name, direction string) (string, error) {
	file, err := MigrationFile(name, direction)
	if err != nil {
		return "", err
	}
	return file, execMigration(ctx, db, file)
}

func MigrationFile(name, direction string) (string, error) {
	if direction != "up" && direction != "down" {
		return "", fmt.Errorf("invalid migration direction %q", direction)
	}

	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.%s\.sql$`, regexp.QuoteMeta(name), direction))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file not found")
}

func execMigration(ctx context.Context, db *sql.DB, file string) error {
	content, err := fs.ReadFile(migrationFiles, migrationsDir+"/"+file)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", file, err)
	}
	return nil
}
