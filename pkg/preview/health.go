package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

const (
	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the JSON body of the health endpoints.
type HealthResponse struct {
	Checks map[string]HealthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

// HealthCheck is the result of a single readiness check.
type HealthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, r, http.StatusOK, &HealthResponse{Status: StatusHealthy})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	resp := h.runChecks(r.Context())

	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeHealth(w, r, status, resp)
}

// runChecks executes all checks in parallel.
func (h *Handler) runChecks(ctx context.Context) *HealthResponse {
	if len(h.opts.checks) == 0 {
		return &HealthResponse{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, h.opts.checkTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]HealthCheck, len(h.opts.checks))
		failed  bool
	)

	for name, check := range h.opts.checks {
		wg.Go(func() {
			result := HealthCheck{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				result = HealthCheck{Status: StatusUnhealthy, Error: err.Error()}
				h.opts.logger.WarnContext(ctx, "readiness check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			failed = failed || result.Status == StatusUnhealthy
			mu.Unlock()
		})
	}
	wg.Wait()

	status := StatusHealthy
	if failed {
		status = StatusUnhealthy
	}
	return &HealthResponse{Status: status, Checks: results}
}

func writeHealth(w http.ResponseWriter, r *http.Request, status int, resp *HealthResponse) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if resp.Status == StatusHealthy {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
