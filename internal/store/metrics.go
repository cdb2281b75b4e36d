package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	statementDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tagpoll",
		Subsystem: "db",
		Name:      "statement_duration_seconds",
		Help:      "Duration of SQL statements issued through a request executor.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"kind"})

	connectAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagpoll",
		Subsystem: "db",
		Name:      "connect_attempts_total",
		Help:      "Database connection attempts by outcome.",
	}, []string{"outcome"})
)

// Collectors returns the store metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{statementDuration, connectAttempts}
}
