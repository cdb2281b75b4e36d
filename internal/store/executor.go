package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/tagpoll/tagpoll/internal/util"
)

// Conn is one physical database connection. *sql.Conn satisfies it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Effect is the outcome of a statement that does not return rows.
type Effect struct {
	RowsAffected int64
	InsertID     int64
}

// RowDecoder converts the current row of rows into a record.
type RowDecoder[T any] func(rows *sql.Rows) (T, error)

// Executor wraps exactly one connection and runs one statement at a time on it.
// Every statement is timed, logged and classified. After Close every call
// fails with KindUsedClosedConnection.
type Executor struct {
	conn   Conn
	mu     sync.Mutex
	closed bool
	log    *zap.SugaredLogger
}

func NewExecutor(conn Conn) *Executor {
	return &Executor{
		conn: conn,
		log:  zap.S().Named("sql"),
	}
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, stmt sq.Sqlizer) (Effect, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return Effect{}, err
	}

	var res sql.Result
	err = e.run(ctx, "exec", query, args, func(ctx context.Context) error {
		var err error
		res, err = e.conn.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return Effect{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Effect{}, classify(err)
	}
	return Effect{RowsAffected: affected}, nil
}

// Insert runs an INSERT ... RETURNING id statement and reports the generated id.
func (e *Executor) Insert(ctx context.Context, stmt sq.InsertBuilder) (Effect, error) {
	ids, err := Query(ctx, e, stmt.Suffix("RETURNING id"), scanInt64)
	if err != nil {
		return Effect{}, err
	}
	effect := Effect{RowsAffected: int64(len(ids))}
	if len(ids) > 0 {
		effect.InsertID = ids[len(ids)-1]
	}
	return effect, nil
}

// Query runs a statement and decodes every returned row with decode.
func Query[T any](ctx context.Context, e *Executor, stmt sq.Sqlizer, decode RowDecoder[T]) ([]T, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	var records []T
	err = e.run(ctx, "query", query, args, func(ctx context.Context) error {
		rows, err := e.conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			record, err := decode(rows)
			if err != nil {
				return &DecodeError{Statement: util.CollapseWhitespace(query), Err: err}
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// QueryOne is Query for statements returning at most one row. It reports
// sql.ErrNoRows when nothing matched.
func QueryOne[T any](ctx context.Context, e *Executor, stmt sq.Sqlizer, decode RowDecoder[T]) (T, error) {
	var zero T
	records, err := Query(ctx, e, stmt, decode)
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, sql.ErrNoRows
	}
	return records[0], nil
}

// Transaction runs fn between BEGIN and COMMIT on the executor's connection.
// When fn fails the transaction is rolled back and fn's error returned.
// Transactions do not nest.
func (e *Executor) Transaction(ctx context.Context, fn func() error) error {
	if err := e.statement(ctx, "BEGIN TRANSACTION"); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := e.statement(ctx, "ROLLBACK"); rbErr != nil {
			e.log.Errorw("failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	return e.statement(ctx, "COMMIT")
}

func (e *Executor) statement(ctx context.Context, query string) error {
	return e.run(ctx, "exec", query, nil, func(ctx context.Context) error {
		_, err := e.conn.ExecContext(ctx, query)
		return err
	})
}

// Close releases the connection. It is safe to call more than once.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.conn.Close()
}

func (e *Executor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Executor) run(ctx context.Context, kind, query string, args []any, fn func(context.Context) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return newClosedError()
	}

	// A cancelled request must not interrupt a statement already sent.
	stmtCtx := context.WithoutCancel(ctx)

	start := time.Now()
	err := fn(stmtCtx)
	elapsed := time.Since(start)

	statementDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	e.log.Debugw("["+util.FormatMillis(elapsed)+"] "+util.CollapseWhitespace(query), "args", args)

	if err == nil {
		return nil
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) {
		return &DBError{Kind: KindUsedClosedConnection, Err: err}
	}
	return classify(err)
}

func scanInt64(rows *sql.Rows) (int64, error) {
	var v int64
	err := rows.Scan(&v)
	return v, err
}
