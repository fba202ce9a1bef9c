package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, cache.RedisClient, events.EventBus).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency probed by HealthHandler.
type HealthCheck struct {
	Name    string
	Checker HealthChecker
}

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthHandler returns an http.HandlerFunc that probes every check and
// reports 503 "degraded" if any of them fail. A nil Checker is skipped.
func HealthHandler(checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Dependencies: make(map[string]string, len(checks))}
		for _, c := range checks {
			if c.Checker == nil {
				continue
			}
			if err := c.Checker.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Dependencies[c.Name] = "unreachable"
				continue
			}
			resp.Dependencies[c.Name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
