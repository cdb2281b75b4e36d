package server_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tagpoll/tagpoll/internal/config"
	"github.com/tagpoll/tagpoll/internal/server"
	"github.com/tagpoll/tagpoll/internal/server/middlewares"
	"github.com/tagpoll/tagpoll/internal/store"
)

// countingDialer counts the connections it opens.
type countingDialer struct {
	db    *sql.DB
	dials atomic.Int32
}

func (d *countingDialer) Dial(ctx context.Context) (store.Conn, error) {
	d.dials.Add(1)
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var _ = Describe("Server", func() {
	var (
		db      *sql.DB
		dialer  *countingDialer
		handler http.Handler
		opened  []*store.Executor
	)

	BeforeEach(func() {
		var err error
		db, err = store.NewDB(store.DriverDuckDB, ":memory:")
		Expect(err).NotTo(HaveOccurred())
		dialer = &countingDialer{db: db}
		opened = nil

		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())

		registry := prometheus.NewRegistry()
		registry.MustRegister(middlewares.Collectors()...)

		lc := store.NewLifecycle(dialer)
		srv := server.NewServer(cfg, lc, registry, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) {
				first, err := lc.GetOrOpen(c.Request.Context())
				if err != nil {
					c.Status(http.StatusServiceUnavailable)
					return
				}
				second, _ := lc.GetOrOpen(c.Request.Context())
				opened = append(opened, first)
				if first != second {
					c.Status(http.StatusConflict)
					return
				}
				c.JSON(http.StatusOK, gin.H{"pong": true})
			})
			router.GET("/idle", func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})
		})
		handler = srv.Handler()
	})

	AfterEach(func() {
		db.Close()
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	It("should share one connection per request and close it afterwards", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		Expect(dialer.dials.Load()).To(BeEquivalentTo(2))
		Expect(opened).To(HaveLen(2))
		Expect(opened[0].Closed()).To(BeTrue())
		Expect(opened[1].Closed()).To(BeTrue())
	})

	It("should not connect when a request never touches the database", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/api/idle", nil))

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(dialer.dials.Load()).To(BeZero())
	})

	It("should report health", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status": "ok"}`))
	})

	It("should answer unknown API routes with 400", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/api/nothing/here", nil))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(MatchJSON(`{"error": "Route not found"}`))
	})

	It("should answer other unknown routes with 404", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/elsewhere", nil))

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer CORS preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring(http.MethodPatch))
		Expect(dialer.dials.Load()).To(BeZero())
	})

	It("should tag responses with a request id", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(w.Header().Get(middlewares.RequestIDHeader)).NotTo(BeEmpty())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(middlewares.RequestIDHeader, "abc")
		w = serve(req)
		Expect(w.Header().Get(middlewares.RequestIDHeader)).To(Equal("abc"))
	})

	It("should expose request metrics", func() {
		serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		w := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`tagpoll_http_requests_total{method="GET",route="/health",status="200"}`))
	})
})
