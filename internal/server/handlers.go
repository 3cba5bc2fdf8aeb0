package server

import (
	"bytes"
	"net/http"

	"beacon/internal/logging"
	"beacon/internal/page"
	"beacon/internal/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// allowRead reports whether r is a GET or HEAD request. Other methods fall
// through to the same 404 an unknown path gets.
func allowRead(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// handleIndex serves the landing page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle exact path match
	if r.URL.Path != "/" || !allowRead(r) {
		http.NotFound(w, r)
		return
	}

	_, span := telemetry.StartSpan(r.Context(), "page.render")
	defer span.End()

	data := page.NewData(s.config.Page)
	if data.ShowRenderInfo {
		data.RenderedAt = s.now()
		data.Port = s.config.Port
		data.Version = s.versionInfo.Version
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		logging.Error("Error rendering landing page: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debug("Failed to write landing page: %v", err)
	}
}

// handleHealth answers liveness and readiness probes
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(r) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(s.healthBody); err != nil {
		logging.Debug("Failed to write health response: %v", err)
	}
}
