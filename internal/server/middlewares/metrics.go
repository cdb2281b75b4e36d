package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tagpoll",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method, route and status.",
}, []string{"method", "route", "status"})

// Collectors returns the HTTP metrics to register.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{httpRequests}
}

// Metrics counts every request once it has been answered.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
