package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// NewDB opens a database handle for the given driver. Idle connections are
// not kept, so every connection handed to a request is a fresh one and is
// really closed when the request ends.
func NewDB(driver, dsn string) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case DriverDuckDB:
		sqlDriver = "duckdb"
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	db.SetMaxIdleConns(0)

	return db, nil
}

type sqlDialer struct {
	db *sql.DB
}

// NewSQLDialer returns a Dialer taking dedicated connections from db.
func NewSQLDialer(db *sql.DB) Dialer {
	return &sqlDialer{db: db}
}

func (d *sqlDialer) Dial(ctx context.Context) (Conn, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
