package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migration is one embedded SQL file, named NNN_description.sql.
type migration struct {
	Version     string
	Description string
	SQL         string
}

// Migrate brings the database schema up to date by applying every embedded
// migration that is not yet recorded in schema_migrations. Each migration
// runs inside its own transaction.
func Migrate(ctx context.Context, pool *ConnectionPool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := initVersionTable(ctx, pool.DB()); err != nil {
		return fmt.Errorf("initialize schema_migrations: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, pool.DB())
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	var pending []migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		logger.Info("database schema is up to date", "applied_count", len(applied))
		return nil
	}

	logger.Info("applying database migrations", "pending_count", len(pending))
	for _, m := range pending {
		started := time.Now()
		if err := applyMigration(ctx, pool, m); err != nil {
			logger.Error("migration failed", "version", m.Version, "error", err)
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		logger.Info("migration applied",
			"version", m.Version,
			"description", m.Description,
			"duration", time.Since(started))
	}
	return nil
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	var migrations []migration
	for _, entry := range entries {
		name := entry.Name()
		version, description, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
		if !ok || version == "" {
			return nil, fmt.Errorf("migration file %q does not match NNN_description.sql", name)
		}
		content, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, migration{
			Version:     version,
			Description: strings.ReplaceAll(description, "_", " "),
			SQL:         string(content),
		})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func initVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL,
			execution_time_ms INTEGER NOT NULL
		)`)
	return err
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, pool *ConnectionPool, m migration) error {
	started := time.Now()
	return pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range splitStatements(m.SQL) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("statement %d: %w", i+1, err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at, execution_time_ms) VALUES (?, ?, ?)`,
			m.Version, formatTime(time.Now()), time.Since(started).Milliseconds())
		return err
	})
}

// splitStatements breaks a migration file into executable statements,
// dropping comment-only lines. Semicolons inside string literals are not
// supported; the migration files do not use them.
func splitStatements(script string) []string {
	var statements []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			statements = append(statements, strings.Join(lines, "\n"))
		}
	}
	return statements
}
