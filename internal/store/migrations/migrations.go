package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const resetFile = "sql/reset.sql"

const (
	queryCreateSchemaMigrations = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT now()
		)`

	queryAppliedVersions = `SELECT version FROM schema_migrations`

	queryRecordVersion = `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`
)

type Mode string

const (
	// ModeProduction applies only migrations not yet recorded.
	ModeProduction Mode = "prod"
	// ModeDevelopment drops the schema and reapplies every migration.
	ModeDevelopment Mode = "dev"
)

// Result reports what a Run did.
type Result struct {
	Mode    Mode
	Reset   bool
	Applied []int
	Skipped []int
}

type migration struct {
	version int
	name    string
	file    string
}

// Run brings the schema up to date.
func Run(ctx context.Context, db *sql.DB, mode Mode) (Result, error) {
	log := zap.S().Named("migrations")
	result := Result{Mode: mode}

	all, err := load()
	if err != nil {
		return result, err
	}

	if mode == ModeDevelopment {
		if err := execFile(ctx, db, resetFile); err != nil {
			return result, fmt.Errorf("failed to reset schema: %w", err)
		}
		result.Reset = true
		log.Infow("schema reset")
	}

	if _, err := db.ExecContext(ctx, queryCreateSchemaMigrations); err != nil {
		return result, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return result, err
	}

	for _, m := range all {
		if applied[m.version] {
			result.Skipped = append(result.Skipped, m.version)
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return result, err
		}
		result.Applied = append(result.Applied, m.version)
		log.Infow("applied migration", "version", m.version, "name", m.name)
	}

	return result, nil
}

func load() ([]migration, error) {
	entries, err := files.ReadDir("sql")
	if err != nil {
		return nil, err
	}

	var out []migration
	for _, e := range entries {
		if path.Join("sql", e.Name()) == resetFile {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %q", e.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %q: %w", e.Name(), err)
		}
		out = append(out, migration{version: version, name: name, file: path.Join("sql", e.Name())})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, queryAppliedVersions)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	content, err := files.ReadFile(m.file)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("migration %04d_%s failed: %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx, queryRecordVersion, m.version, m.name); err != nil {
		return fmt.Errorf("failed to record migration %04d: %w", m.version, err)
	}
	return tx.Commit()
}

func execFile(ctx context.Context, db *sql.DB, file string) error {
	content, err := files.ReadFile(file)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
