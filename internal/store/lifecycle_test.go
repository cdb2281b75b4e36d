package store_test

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tagpoll/tagpoll/internal/store"
)

func refused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
}

// flakyDialer refuses the first refusals attempts and then dials db.
type flakyDialer struct {
	mu       sync.Mutex
	db       *sql.DB
	refusals int
	failWith error
	attempts int
}

func (d *flakyDialer) Dial(ctx context.Context) (store.Conn, error) {
	d.mu.Lock()
	d.attempts++
	attempt := d.attempts
	d.mu.Unlock()

	if d.failWith != nil {
		return nil, d.failWith
	}
	if d.refusals < 0 || attempt <= d.refusals {
		return nil, refused()
	}
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (d *flakyDialer) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

var _ = Describe("Lifecycle", func() {
	var (
		ctx context.Context
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(store.DriverDuckDB, ":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		db.Close()
	})

	Context("GetOrOpen", func() {
		// Given a request scope
		// When GetOrOpen is called twice
		// Then both calls should return the same executor and dial once
		It("should return the same executor within a request", func() {
			dialer := &flakyDialer{db: db}
			lc := store.NewLifecycle(dialer)
			reqCtx := store.WithRequestConnection(ctx)
			defer lc.CloseForRequest(reqCtx)

			first, err := lc.GetOrOpen(reqCtx)
			Expect(err).NotTo(HaveOccurred())
			second, err := lc.GetOrOpen(reqCtx)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(BeIdenticalTo(first))
			Expect(dialer.Attempts()).To(Equal(1))
		})

		It("should return the same executor to concurrent callers", func() {
			dialer := &flakyDialer{db: db}
			lc := store.NewLifecycle(dialer)
			reqCtx := store.WithRequestConnection(ctx)
			defer lc.CloseForRequest(reqCtx)

			const callers = 8
			results := make([]*store.Executor, callers)
			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					exec, err := lc.GetOrOpen(reqCtx)
					Expect(err).NotTo(HaveOccurred())
					results[i] = exec
				}(i)
			}
			wg.Wait()

			for _, exec := range results {
				Expect(exec).To(BeIdenticalTo(results[0]))
			}
			Expect(dialer.Attempts()).To(Equal(1))
		})

		It("should give separate requests separate executors", func() {
			lc := store.NewLifecycle(store.NewSQLDialer(db))
			reqA := store.WithRequestConnection(ctx)
			reqB := store.WithRequestConnection(ctx)
			defer lc.CloseForRequest(reqA)
			defer lc.CloseForRequest(reqB)

			a, err := lc.GetOrOpen(reqA)
			Expect(err).NotTo(HaveOccurred())
			b, err := lc.GetOrOpen(reqB)
			Expect(err).NotTo(HaveOccurred())

			Expect(a).NotTo(BeIdenticalTo(b))
		})

		It("should fail without a request scope", func() {
			lc := store.NewLifecycle(store.NewSQLDialer(db))

			_, err := lc.GetOrOpen(ctx)

			Expect(err).To(MatchError(store.ErrNoRequestScope))
		})
	})

	Context("CloseForRequest", func() {
		// Given an executor obtained for a request
		// When the request connection is closed
		// Then statements on that executor should fail with KindUsedClosedConnection
		It("should close the request executor", func() {
			lc := store.NewLifecycle(store.NewSQLDialer(db))
			reqCtx := store.WithRequestConnection(ctx)

			exec, err := lc.GetOrOpen(reqCtx)
			Expect(err).NotTo(HaveOccurred())

			lc.CloseForRequest(reqCtx)

			_, err = exec.Exec(reqCtx, sq.Expr("SELECT 1"))
			Expect(store.IsKind(err, store.KindUsedClosedConnection)).To(BeTrue())
		})

		It("should open a fresh executor after close", func() {
			lc := store.NewLifecycle(store.NewSQLDialer(db))
			reqCtx := store.WithRequestConnection(ctx)

			first, err := lc.GetOrOpen(reqCtx)
			Expect(err).NotTo(HaveOccurred())
			lc.CloseForRequest(reqCtx)

			second, err := lc.GetOrOpen(reqCtx)
			Expect(err).NotTo(HaveOccurred())
			defer lc.CloseForRequest(reqCtx)

			Expect(second).NotTo(BeIdenticalTo(first))
		})

		It("should be a no-op when nothing was opened", func() {
			lc := store.NewLifecycle(store.NewSQLDialer(db))

			Expect(func() {
				lc.CloseForRequest(store.WithRequestConnection(ctx))
				lc.CloseForRequest(ctx)
			}).NotTo(Panic())
		})
	})

	Context("Connect", func() {
		// Given a database that refuses the first four attempts
		// When connecting
		// Then the fifth attempt should succeed
		It("should retry refused connections", func() {
			dialer := &flakyDialer{db: db, refusals: 4}
			lc := store.NewLifecycle(dialer, store.WithRetryInterval(time.Millisecond))

			exec, err := lc.Connect(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(dialer.Attempts()).To(Equal(5))
			Expect(exec.Close()).To(Succeed())
		})

		It("should give up after the attempt ceiling", func() {
			dialer := &flakyDialer{db: db, refusals: -1}
			lc := store.NewLifecycle(dialer, store.WithRetryInterval(time.Millisecond))

			_, err := lc.Connect(ctx)

			Expect(store.IsKind(err, store.KindCouldNotConnect)).To(BeTrue())
			Expect(errors.Is(err, syscall.ECONNREFUSED)).To(BeTrue())
			Expect(dialer.Attempts()).To(Equal(store.DefaultConnectRetryAttempts))
		})

		It("should not retry other errors", func() {
			authErr := errors.New("password authentication failed")
			dialer := &flakyDialer{db: db, failWith: authErr}
			lc := store.NewLifecycle(dialer, store.WithRetryInterval(time.Millisecond))

			_, err := lc.Connect(ctx)

			Expect(store.IsKind(err, store.KindCouldNotConnect)).To(BeTrue())
			Expect(errors.Is(err, authErr)).To(BeTrue())
			Expect(dialer.Attempts()).To(Equal(1))
		})

		It("should stop waiting when the context is cancelled", func() {
			dialer := &flakyDialer{db: db, refusals: -1}
			lc := store.NewLifecycle(dialer, store.WithRetryInterval(time.Hour))
			cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err := lc.Connect(cctx)

			Expect(store.IsKind(err, store.KindCouldNotConnect)).To(BeTrue())
			Expect(dialer.Attempts()).To(Equal(1))
		})

		It("should honour a custom attempt ceiling", func() {
			dialer := &flakyDialer{db: db, refusals: -1}
			lc := store.NewLifecycle(dialer, store.WithRetryInterval(time.Millisecond), store.WithRetryAttempts(3))

			_, err := lc.Connect(ctx)

			Expect(err).To(HaveOccurred())
			Expect(dialer.Attempts()).To(Equal(3))
		})
	})
})
