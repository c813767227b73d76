// Package api exposes a read-only JSON surface over a linked catalog:
// NEO lookup by designation or name, and close-approach queries with the
// same bounds the CLI query command accepts.
package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/signalsfoundry/neo-explorer/core"
	"github.com/signalsfoundry/neo-explorer/internal/logging"
	"github.com/signalsfoundry/neo-explorer/internal/observability"
	"github.com/signalsfoundry/neo-explorer/kb"
	"github.com/signalsfoundry/neo-explorer/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/neo-explorer/internal/api"

// Server serves the catalog over HTTP. The catalog is fully linked before
// the server exists, so handlers never observe a partial view.
type Server struct {
	catalog   *kb.Catalog
	log       logging.Logger
	collector *observability.CatalogCollector
	tracer    trace.Tracer

	mux *http.ServeMux
}

// NewServer builds a Server around a linked catalog. The collector may be
// nil, in which case requests are served without metrics.
func NewServer(catalog *kb.Catalog, log logging.Logger, collector *observability.CatalogCollector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	s := &Server{
		catalog:   catalog,
		log:       log,
		collector: collector,
		tracer:    otel.Tracer(tracerName),
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /v1/neos/{designation}", s.instrument("neo_by_designation", s.handleNEOByDesignation))
	s.mux.Handle("GET /v1/neos", s.instrument("neo_by_name", s.handleNEOByName))
	s.mux.Handle("GET /v1/approaches", s.instrument("approaches", s.handleApproaches))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// statusWriter captures the response code for metrics.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(name string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), "api."+name,
			trace.WithAttributes(attribute.String("http.target", r.URL.Path)))
		defer span.End()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		span.SetAttributes(attribute.Int("http.status_code", sw.code))
		s.collector.ObserveRequest(name, sw.code, elapsed)
		s.log.Debug(ctx, "handled request",
			logging.String("handler", name),
			logging.Int("code", sw.code),
			logging.String("elapsed", elapsed.String()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	neos, approaches := s.catalog.Len()
	writeDoc(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"neos":       neos,
		"approaches": approaches,
	})
}

func (s *Server) handleNEOByDesignation(w http.ResponseWriter, r *http.Request) {
	neo := s.catalog.GetByDesignation(r.PathValue("designation"))
	if neo == nil {
		writeError(w, http.StatusNotFound, "unknown designation")
		return
	}
	writeDoc(w, http.StatusOK, neoDoc(neo))
}

func (s *Server) handleNEOByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	neo := s.catalog.GetByName(name)
	if neo == nil {
		writeError(w, http.StatusNotFound, "unknown name")
		return
	}
	writeDoc(w, http.StatusOK, neoDoc(neo))
}

func (s *Server) handleApproaches(w http.ResponseWriter, r *http.Request) {
	crit, limit, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := s.catalog.Query(crit.Matches, limit)
	docs := make([]map[string]any, 0, len(results))
	for _, ca := range results {
		doc, err := core.JSONRecord(ca)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		docs = append(docs, doc)
	}
	writeDoc(w, http.StatusOK, docs)
}

func neoDoc(neo *model.NearEarthObject) map[string]any {
	var name any
	if neo.Name != "" {
		name = neo.Name
	}
	var diameter any
	if !math.IsNaN(neo.Diameter) {
		diameter = neo.Diameter
	}
	return map[string]any{
		"designation":           neo.Designation,
		"name":                  name,
		"diameter_km":           diameter,
		"potentially_hazardous": neo.Hazardous,
		"approach_count":        len(neo.Approaches),
	}
}

func writeDoc(w http.ResponseWriter, code int, doc any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(doc)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeDoc(w, code, map[string]any{"error": msg})
}
