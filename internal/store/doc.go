// Package store implements the data access layer for tagpoll.
//
// Statements are built with squirrel (dollar placeholders) and run through an
// Executor bound to one database connection. The same SQL runs on DuckDB and
// on PostgreSQL; the driver is chosen by NewDB.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                       Lifecycle (per request)                   │
//	│   Connect (retry on refused) → Executor → CloseForRequest       │
//	├─────────────────────────────────────────────────────────────────┤
//	│                         Store (facade)                          │
//	├──────────────┬──────────────┬──────────────┬────────────────────┤
//	│ ProfileStore │ QuestionStore│ OptionStore  │ VoteStore          │
//	│ TagStore     │ TaggingStore │ SuggestionEngine │ VoteTabulator  │
//	├──────────────┴──────────────┴──────────────┴────────────────────┤
//	│                   Executor (one connection)                     │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Tables are created by the embedded migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  profile           │  Accounts (username, password hash, salt)   │
//	│  question          │  Poll questions, owned by a profile         │
//	│  option_           │  Answer options of a question               │
//	│  vote              │  One vote per (profile, question)           │
//	│  tag               │  Named tags, optionally categorized         │
//	│  profile_tag       │  Tags carried by a profile                  │
//	│  question_tag      │  Tags carried by a question                 │
//	│  schema_migrations │  Applied migration versions                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Connection Lifecycle
//
// A request never shares a connection with another request. The server wraps
// every /api request context with WithRequestConnection; the first call to
// Lifecycle.Store or GetOrOpen dials, later calls reuse that executor, and the
// middleware calls CloseForRequest when the handler returns. Requests that do
// not touch the database never open a connection.
//
//	WithRequestConnection(ctx)
//	    │
//	    ├── Store(ctx) ──► GetOrOpen ──► Connect ──► Dialer.Dial
//	    │                                   │
//	    │                      ECONNREFUSED: retry with a constant interval
//	    │                      anything else: fail at once
//	    │
//	    └── CloseForRequest(ctx)  (errors logged, never returned)
//
// Every connect failure is reported as a *DBError of KindCouldNotConnect.
//
// # Executor
//
// Executor runs statements and decodes rows:
//
//	Exec(ctx, stmt)               → Effect{RowsAffected}
//	Insert(ctx, insertBuilder)    → Effect{InsertID} (RETURNING id)
//	Query[T](ctx, e, stmt, dec)   → []T
//	QueryOne[T](ctx, e, stmt, dec)→ T or sql.ErrNoRows
//
// Statements run under context.WithoutCancel so a client going away does not
// abort a write half way. Using a closed executor fails with
// KindUsedClosedConnection. Each statement is logged with the "sql" logger and
// timed into the tagpoll_db_statement_duration_seconds histogram.
//
// # Errors
//
// Driver errors are classified into *DBError:
//
//	┌──────────────────────────┬────────────────────────────────────────┐
//	│ Kind                     │ Cause                                  │
//	├──────────────────────────┼────────────────────────────────────────┤
//	│ KindDuplicateKey         │ unique or primary key violation        │
//	│ KindMissingReferencedRow │ insert/update referencing a missing row│
//	│ KindRowReferenced        │ delete of a row still referenced       │
//	│ KindCouldNotConnect      │ dial failed after retries              │
//	│ KindUsedClosedConnection │ statement on a closed executor         │
//	│ KindUnknownDriver        │ anything else                          │
//	└──────────────────────────┴────────────────────────────────────────┘
//
// PostgreSQL errors are classified by SQLSTATE through pgconn.PgError; DuckDB
// errors by message. Lookups of missing records return the typed not found
// errors of pkg/errors.
//
// # Suggestions and Vote Tables
//
// SuggestionEngine.Suggest returns up to MaxSuggestions questions sharing tags
// with a seed question, best overlap first. VoteTabulator.Tabulate returns,
// per option, the vote total and the number of voters carrying each tag.
//
// # Usage
//
//	db, err := store.NewDB(store.DriverDuckDB, "")
//	lc := store.NewLifecycle(store.NewSQLDialer(db), store.WithRetryAttempts(40))
//
//	ctx = store.WithRequestConnection(ctx)
//	defer lc.CloseForRequest(ctx)
//	s, err := lc.Store(ctx)
//	q, err := s.Question().Get(ctx, 1)
package store
