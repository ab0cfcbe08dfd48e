// Package health provides HTTP liveness and readiness handlers for the
// dictation service's operational endpoint.
//
//   - /healthz — liveness probe; a process that can serve HTTP is alive.
//   - /readyz  — readiness probe; 200 only while every registered probe
//     passes, notably the fragment queue's drain worker.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// probeTimeout bounds a single readiness probe.
const probeTimeout = 2 * time.Second

// Probe is a named readiness check. Check returns nil while the probed
// component can accept work.
type Probe struct {
	// Name appears as a key in the /readyz response (e.g. "queue").
	Name string

	// Check probes the component. It must respect context cancellation.
	Check func(ctx context.Context) error
}

type response struct {
	Status string            `json:"status"`
	Probes map[string]string `json:"probes,omitempty"`
}

// Handler serves the /healthz and /readyz routes. The probe list is fixed
// at construction; Handler is safe for concurrent use.
type Handler struct {
	probes []Probe
}

// New returns a [Handler] evaluating probes, in order, on each /readyz
// request.
func New(probes ...Probe) *Handler {
	p := make([]Probe, len(probes))
	copy(p, probes)
	return &Handler{probes: p}
}

// Register adds the health routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /readyz", h.readyz)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	res := response{Status: "ok", Probes: make(map[string]string, len(h.probes))}
	status := http.StatusOK

	for _, p := range h.probes {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		err := p.Check(ctx)
		cancel()

		if err != nil {
			res.Probes[p.Name] = "fail: " + err.Error()
			res.Status = "fail"
			status = http.StatusServiceUnavailable
		} else {
			res.Probes[p.Name] = "ok"
		}
	}

	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
