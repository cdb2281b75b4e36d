package store

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	DefaultConnectRetryInterval = 500 * time.Millisecond
	DefaultConnectRetryAttempts = 40
)

// ErrNoRequestScope is returned by GetOrOpen when the context was not
// prepared with WithRequestConnection.
var ErrNoRequestScope = errors.New("no request connection scope in context")

// Dialer opens a new physical connection.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context) (Conn, error) {
	return f(ctx)
}

type LifecycleOption func(*Lifecycle)

func WithRetryInterval(d time.Duration) LifecycleOption {
	return func(l *Lifecycle) {
		l.interval = d
	}
}

func WithRetryAttempts(n int) LifecycleOption {
	return func(l *Lifecycle) {
		l.attempts = n
	}
}

// Lifecycle opens one connection per request on demand and closes it when
// the request ends. Nothing is shared between requests.
type Lifecycle struct {
	dialer   Dialer
	interval time.Duration
	attempts int
	log      *zap.SugaredLogger
}

func NewLifecycle(dialer Dialer, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		dialer:   dialer,
		interval: DefaultConnectRetryInterval,
		attempts: DefaultConnectRetryAttempts,
		log:      zap.S().Named("db_lifecycle"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Connect dials a new connection. Refused connections are retried with a
// constant interval until the attempt ceiling; any other failure is final.
// Every failure is reported as KindCouldNotConnect.
func (l *Lifecycle) Connect(ctx context.Context) (*Executor, error) {
	attempt := 0
	operation := func() (Conn, error) {
		attempt++
		conn, err := l.dialer.Dial(ctx)
		if err == nil {
			connectAttempts.WithLabelValues("success").Inc()
			return conn, nil
		}
		if errors.Is(err, syscall.ECONNREFUSED) {
			connectAttempts.WithLabelValues("refused").Inc()
			return nil, err
		}
		connectAttempts.WithLabelValues("error").Inc()
		return nil, backoff.Permanent(err)
	}

	conn, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(l.interval)),
		backoff.WithMaxTries(uint(l.attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.log.Infow("database refused connection, retrying",
				"attempt", attempt, "remaining", l.attempts-attempt, "next", next, "error", err)
		}),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
		l.log.Errorw("failed to connect to database", "attempts", attempt, "error", err)
		return nil, newCouldNotConnectError(err)
	}

	l.log.Debugw("opened database connection", "attempts", attempt)
	return NewExecutor(conn), nil
}

type requestConnKey struct{}

// requestConnection holds the executor of one request.
type requestConnection struct {
	mu       sync.Mutex
	executor *Executor
}

// WithRequestConnection returns a context carrying an empty connection
// scope. GetOrOpen and CloseForRequest act on that scope.
func WithRequestConnection(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestConnKey{}, &requestConnection{})
}

func requestConnectionFrom(ctx context.Context) *requestConnection {
	rc, _ := ctx.Value(requestConnKey{}).(*requestConnection)
	return rc
}

// GetOrOpen returns the executor of the request, connecting on first use.
// Every call within one request scope returns the same executor.
func (l *Lifecycle) GetOrOpen(ctx context.Context) (*Executor, error) {
	rc := requestConnectionFrom(ctx)
	if rc == nil {
		return nil, ErrNoRequestScope
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.executor != nil {
		return rc.executor, nil
	}

	exec, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	rc.executor = exec
	return exec, nil
}

// CloseForRequest closes the executor of the request, if one was opened.
// Close failures are logged and never returned.
func (l *Lifecycle) CloseForRequest(ctx context.Context) {
	rc := requestConnectionFrom(ctx)
	if rc == nil {
		return
	}

	rc.mu.Lock()
	exec := rc.executor
	rc.executor = nil
	rc.mu.Unlock()

	if exec == nil {
		return
	}
	if err := exec.Close(); err != nil {
		l.log.Errorw("failed to close database connection", "error", err)
	}
}

// Store returns the record stores bound to the request executor.
func (l *Lifecycle) Store(ctx context.Context) (*Store, error) {
	exec, err := l.GetOrOpen(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(exec), nil
}
