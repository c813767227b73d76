package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCatalogCollector(reg)
	if err != nil {
		t.Fatalf("NewCatalogCollector: %v", err)
	}

	collector.ObserveRequest("approaches", http.StatusOK, 12*time.Millisecond)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("approaches", "200")); got != 1 {
		t.Fatalf("neo_http_requests_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "neo_http_request_duration_seconds", "approaches"); count != 1 {
		t.Fatalf("duration sample_count = %d, want 1", count)
	}
}

func TestSetCatalogSize(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCatalogCollector(reg)
	if err != nil {
		t.Fatalf("NewCatalogCollector: %v", err)
	}

	collector.SetCatalogSize(23967, 406785)

	if got := testutil.ToFloat64(collector.CatalogNEOs); got != 23967 {
		t.Fatalf("neo_catalog_objects = %v", got)
	}
	if got := testutil.ToFloat64(collector.CatalogApproaches); got != 406785 {
		t.Fatalf("neo_catalog_approaches = %v", got)
	}
}

func TestNewCatalogCollectorIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCatalogCollector(reg); err != nil {
		t.Fatalf("first NewCatalogCollector: %v", err)
	}
	if _, err := NewCatalogCollector(reg); err != nil {
		t.Fatalf("second NewCatalogCollector should reuse collectors: %v", err)
	}
}

func TestMetricsHandlerServesCatalogGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCatalogCollector(reg)
	if err != nil {
		t.Fatalf("NewCatalogCollector: %v", err)
	}
	collector.SetCatalogSize(2, 3)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "neo_catalog_objects 2") {
		t.Fatalf("metrics output missing gauge:\n%s", body)
	}
}

func histogramSampleCount(t *testing.T, reg prometheus.Gatherer, name, handler string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if labelValue(m, "handler") == handler {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, key string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == key {
			return lp.GetValue()
		}
	}
	return ""
}
