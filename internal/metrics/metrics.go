// Package metrics exposes the Prometheus collectors for the résumé service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_site_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cv_site_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_site_page_renders_total",
			Help: "Total number of rendered pages by theme and document state",
		},
		[]string{"theme", "state"},
	)

	ThemeSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_site_theme_selections_total",
			Help: "Total number of theme changes by resolved theme key",
		},
		[]string{"theme"},
	)

	DocumentFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_site_document_fetches_total",
			Help: "Total number of cv.json fetches by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_site_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cv_site_active_sessions",
			Help: "Number of live viewer sessions",
		},
	)
)
