package handlers

import (
	"context"
	"net/http"
	"time"
)

func (s *Service) handleLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}

// handleReadiness runs every registered check. Any failure makes the whole
// endpoint answer 503 so load balancers stop routing traffic here.
func (s *Service) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := make(map[string]string, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
			continue
		}
		results[name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	respondJSON(w, status, map[string]any{"status": state, "checks": results})
}
