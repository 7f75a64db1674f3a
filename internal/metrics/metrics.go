package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry               *prometheus.Registry
	httpRequests           *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
	normalizePasses        prometheus.Counter
	quotesPriced           *prometheus.CounterVec
	incompletePricings     prometheus.Counter
	catalogRefreshes       prometheus.Counter
	catalogRefreshDuration prometheus.Histogram
}

// New creates a fresh Metrics registry with HTTP and configurator metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comfora",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by core-go",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "comfora",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by core-go",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	normalizePasses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "comfora",
		Name:      "normalize_passes_total",
		Help:      "Total number of configuration normalization passes",
	})

	quotesPriced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comfora",
		Name:      "quotes_priced_total",
		Help:      "Total number of price quotes computed, by cache outcome",
	}, []string{"cache"})

	incompletePricings := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "comfora",
		Name:      "incomplete_pricings_total",
		Help:      "Quotes that priced with missing catalog entries substituted as zero",
	})

	catalogRefreshes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "comfora",
		Name:      "catalog_refreshes_total",
		Help:      "Total number of catalog snapshot refreshes applied",
	})

	catalogRefreshDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "comfora",
		Name:      "catalog_refresh_duration_seconds",
		Help:      "Duration of building a catalog snapshot from the database",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		normalizePasses,
		quotesPriced,
		incompletePricings,
		catalogRefreshes,
		catalogRefreshDuration,
	)

	return &Metrics{
		registry:               registry,
		httpRequests:           httpRequests,
		httpRequestDuration:    httpRequestDuration,
		normalizePasses:        normalizePasses,
		quotesPriced:           quotesPriced,
		incompletePricings:     incompletePricings,
		catalogRefreshes:       catalogRefreshes,
		catalogRefreshDuration: catalogRefreshDuration,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// IncNormalizePass increments the normalization pass counter.
func (m *Metrics) IncNormalizePass() {
	if m == nil {
		return
	}
	m.normalizePasses.Inc()
}

// IncQuotePriced records one priced quote. cached marks a cache hit.
func (m *Metrics) IncQuotePriced(cached bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	m.quotesPriced.With(prometheus.Labels{"cache": outcome}).Inc()
}

// IncIncompletePricing increments the incomplete-pricing counter.
func (m *Metrics) IncIncompletePricing() {
	if m == nil {
		return
	}
	m.incompletePricings.Inc()
}

// IncCatalogRefresh increments the catalog refresh counter.
func (m *Metrics) IncCatalogRefresh() {
	if m == nil {
		return
	}
	m.catalogRefreshes.Inc()
}

// ObserveCatalogRefreshDuration observes one snapshot rebuild.
func (m *Metrics) ObserveCatalogRefreshDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.catalogRefreshDuration.Observe(duration.Seconds())
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
