// Package health provides Kubernetes-style liveness and readiness probe
// endpoints. Checks run on demand when a probe request arrives, each under
// its own timeout.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil when healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready     atomic.Bool
	liveness  []check
	readiness []check
}

// New creates a Health instance. The service starts not-ready; call
// SetReady(true) once initialization finishes. Checks must be registered
// before the endpoints are served.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check that decides whether the process is
// alive (goroutine count, deadlock detection).
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.liveness = append(h.liveness, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check that decides whether the service can
// accept traffic (database connectivity, local storage).
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.readiness = append(h.readiness, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the manual readiness gate. Set false during graceful
// shutdown to drain traffic before the listener stops.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// LiveEndpoint serves the /livez probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, runChecks(r.Context(), h.liveness))
}

// ReadyEndpoint serves the /readyz probe. It fails while the manual gate is
// down, regardless of check results.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	failures := runChecks(r.Context(), h.readiness)
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

func runChecks(ctx context.Context, checks []check) map[string]string {
	failures := make(map[string]string)
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()
		if err != nil {
			failures[c.name] = err.Error()
		}
	}
	return failures
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	if len(failures) > 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(statusResponse{Status: "unhealthy", Checks: failures})
		return
	}
	_ = json.NewEncoder(w).Encode(statusResponse{Status: "ok"})
}
