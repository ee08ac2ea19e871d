package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/textcat/internal/jobs"
)

func (s *Service) handleListJobs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"jobs": s.jobs.List()})
}

func (s *Service) handleActiveJobs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"jobs": s.jobs.Active()})
}

func (s *Service) handleGetJob(w http.ResponseWriter, r *http.Request) {
	info, ok := s.jobs.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, jobs.ErrUnknownJob)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

type dummyJobRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

// handleDummyJob starts a job that sleeps for the requested duration. Useful
// for exercising the polling workflow without a database.
func (s *Service) handleDummyJob(w http.ResponseWriter, r *http.Request) {
	req := dummyJobRequest{DurationSeconds: 1}
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
	}
	if req.DurationSeconds < 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "duration_seconds must not be negative"})
		return
	}

	duration := time.Duration(req.DurationSeconds) * time.Second
	info := s.jobs.Start(context.WithoutCancel(r.Context()), "dummy", func(ctx context.Context) (any, error) {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-timer.C:
			return map[string]any{"slept_seconds": req.DurationSeconds}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	respondJSON(w, http.StatusAccepted, info)
}
