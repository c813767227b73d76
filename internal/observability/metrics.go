package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogCollector bundles Prometheus metrics for the catalog and its HTTP
// surface and provides a ready-made /metrics handler.
type CatalogCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	CatalogNEOs       prometheus.Gauge
	CatalogApproaches prometheus.Gauge
}

// NewCatalogCollector registers catalog metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCatalogCollector(reg prometheus.Registerer) (*CatalogCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neo_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by handler and status code.",
	}, []string{"handler", "code"})
	requests, err := registerCounterVec(reg, requests, "neo_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neo_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"handler"})
	durations, err = registerHistogramVec(reg, durations, "neo_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	neos, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neo_catalog_objects",
		Help: "Number of near-Earth objects in the loaded catalog.",
	}), "neo_catalog_objects")
	if err != nil {
		return nil, err
	}
	approaches, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neo_catalog_approaches",
		Help: "Number of close approaches in the loaded catalog.",
	}), "neo_catalog_approaches")
	if err != nil {
		return nil, err
	}

	return &CatalogCollector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		CatalogNEOs:       neos,
		CatalogApproaches: approaches,
	}, nil
}

// ObserveRequest records one handled HTTP request.
func (c *CatalogCollector) ObserveRequest(handler string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(handler, fmt.Sprintf("%d", code)).Inc()
	}
	if c.HTTPDurations != nil {
		c.HTTPDurations.WithLabelValues(handler).Observe(elapsed.Seconds())
	}
}

// SetCatalogSize drives the catalog gauges, typically once after the
// linking pass completes.
func (c *CatalogCollector) SetCatalogSize(neos, approaches int) {
	if c == nil {
		return
	}
	if c.CatalogNEOs != nil {
		c.CatalogNEOs.Set(float64(neos))
	}
	if c.CatalogApproaches != nil {
		c.CatalogApproaches.Set(float64(approaches))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *CatalogCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
