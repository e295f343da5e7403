package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/render"
)

// Collector computes a dashboard.
type Collector interface {
	Collect(ctx context.Context) (*dashboard.Dashboard, error)
}

type handler struct {
	collector Collector
	job       jenkins.Job
	template  []byte
}

// NewRouter serves the HTML dashboard on /, its JSON on /api/v1/dashboard
// and a liveness probe on /healthz.
func NewRouter(c Collector, job jenkins.Job, tmpl []byte) http.Handler {
	h := &handler{collector: c, job: job, template: tmpl}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.dashboardHandler)
	r.Get("/api/v1/dashboard", h.dashboardJSONHandler)
	r.Get("/healthz", healthzHandler)
	return r
}

func (h *handler) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.collector.Collect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var page bytes.Buffer
	if err := render.HTML(&page, h.template, d, h.job); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

func (h *handler) dashboardJSONHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.collector.Collect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("unable to encode response: %v", err)
	}
}

// writeError answers 502 when Jenkins could not be read or returned a
// document that could not be parsed, and 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	log.Errorf("unable to serve dashboard: %v", err)
	status := http.StatusInternalServerError
	var transport *jenkins.TransportError
	var malformed *jenkins.MalformedDocumentError
	if errors.As(err, &transport) || errors.As(err, &malformed) {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
