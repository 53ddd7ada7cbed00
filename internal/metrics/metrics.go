// Package metrics exports Prometheus metrics for the HTTP API and the article domain.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "newsportal/internal/errors"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ArticlesCreatedTotal *prometheus.CounterVec
	ArticlesDeletedTotal prometheus.Counter
	ArticleViewsTotal    prometheus.Counter
}

// New registers the collectors on reg under namespace.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		ArticlesCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "articles_created_total",
				Help:      "Articles created by category",
			},
			[]string{"category"},
		),
		ArticlesDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "articles_deleted_total",
				Help:      "Articles deleted",
			},
		),
		ArticleViewsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "article_views_total",
				Help:      "Single-article fetches that incremented a view counter",
			},
		),
	}
}

// ArticleCreated counts a new article. Safe on a nil receiver.
func (m *Metrics) ArticleCreated(category string) {
	if m == nil {
		return
	}
	m.ArticlesCreatedTotal.WithLabelValues(category).Inc()
}

// ArticleDeleted counts a removed article. Safe on a nil receiver.
func (m *Metrics) ArticleDeleted() {
	if m == nil {
		return
	}
	m.ArticlesDeletedTotal.Inc()
}

// ArticleViewed counts a view increment. Safe on a nil receiver.
func (m *Metrics) ArticleViewed() {
	if m == nil {
		return
	}
	m.ArticleViewsTotal.Inc()
}

// Middleware records request count, latency and in-flight requests. The path
// label is the route template so ids do not explode cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = apperrors.MapErrorToHTTP(err).StatusCode
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
