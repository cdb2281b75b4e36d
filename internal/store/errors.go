package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the closed set of database failure categories surfaced by the
// executor and the lifecycle.
type Kind int

const (
	KindUnknownDriver Kind = iota
	KindUsedClosedConnection
	KindDuplicateKey
	KindMissingReferencedRow
	KindRowReferenced
	KindCouldNotConnect
)

func (k Kind) String() string {
	switch k {
	case KindUsedClosedConnection:
		return "used_closed_connection"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindMissingReferencedRow:
		return "missing_referenced_row"
	case KindRowReferenced:
		return "row_referenced"
	case KindCouldNotConnect:
		return "could_not_connect"
	default:
		return "unknown"
	}
}

// PostgreSQL SQLSTATE codes we classify.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type DBError struct {
	Kind Kind
	// Code is the driver specific code: a SQLSTATE for PostgreSQL, the error
	// type name for DuckDB.
	Code string
	Err  error
}

func (e *DBError) Error() string {
	switch e.Kind {
	case KindUsedClosedConnection:
		return "used a closed database connection"
	case KindCouldNotConnect:
		if e.Err != nil {
			return fmt.Sprintf("could not connect to database: %v", e.Err)
		}
		return "could not connect to database"
	}
	if e.Code != "" {
		return fmt.Sprintf("database error (%s, %s): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("database error (%s): %v", e.Kind, e.Err)
}

func (e *DBError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a *DBError found in err's chain.
func KindOf(err error) (Kind, bool) {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// DecodeError is returned when a row cannot be converted to its typed record.
type DecodeError struct {
	Statement string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode row of %q: %v", e.Statement, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newClosedError() *DBError {
	return &DBError{Kind: KindUsedClosedConnection}
}

func newCouldNotConnectError(err error) *DBError {
	return &DBError{Kind: KindCouldNotConnect, Err: err}
}

// classify converts a driver failure into a *DBError. It is called exactly
// once, at the executor boundary.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr, err)
	}

	var duckErr *duckdb.Error
	if errors.As(err, &duckErr) {
		return classifyDuckDB(duckErr, err)
	}

	return &DBError{Kind: KindUnknownDriver, Err: err}
}

func classifyPostgres(pgErr *pgconn.PgError, err error) *DBError {
	out := &DBError{Kind: KindUnknownDriver, Code: pgErr.Code, Err: err}
	switch pgErr.Code {
	case pgUniqueViolation:
		out.Kind = KindDuplicateKey
	case pgForeignKeyViolation:
		// Deleting or re-keying a parent reports "update or delete on table";
		// inserting a dangling child reports "insert or update on table".
		if strings.HasPrefix(pgErr.Message, "update or delete on table") {
			out.Kind = KindRowReferenced
		} else {
			out.Kind = KindMissingReferencedRow
		}
	}
	return out
}

func classifyDuckDB(duckErr *duckdb.Error, err error) *DBError {
	out := &DBError{Kind: KindUnknownDriver, Code: duckErrorTypeName(duckErr.Type), Err: err}
	if duckErr.Type != duckdb.ErrorTypeConstraint {
		return out
	}
	msg := duckErr.Msg
	switch {
	case strings.Contains(msg, "does not exist in the referenced table"):
		out.Kind = KindMissingReferencedRow
	case strings.Contains(msg, "still referenced"):
		out.Kind = KindRowReferenced
	case strings.Contains(msg, "Duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "primary key constraint"):
		out.Kind = KindDuplicateKey
	}
	return out
}

func duckErrorTypeName(t duckdb.ErrorType) string {
	if t == duckdb.ErrorTypeConstraint {
		return "Constraint"
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}
