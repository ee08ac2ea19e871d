package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/textcat/internal/reporter"
)

type startReportRequest struct {
	Params map[string]any `json:"params"`
	Config string         `json:"config"`
}

type startReportResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Path   string `json:"path"`
}

// handleStartReport kicks off a CSV export as a background job and returns
// the job id for polling.
func (s *Service) handleStartReport(w http.ResponseWriter, r *http.Request) {
	if s.adapter == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "report database is not configured"})
		return
	}

	label := chi.URLParam(r, "label")

	var req startReportRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
	}

	s.mu.RLock()
	_, err := s.repCfg.Query(label)
	if err == nil && req.Config != "" {
		_, err = s.repCfg.CSVSpec(req.Config)
	}
	s.mu.RUnlock()
	if err != nil {
		respondError(w, err)
		return
	}

	outPath := filepath.Join(s.cfg.ReportsDir, reportFileName(label, time.Now().UTC()))
	info := s.jobs.Start(context.WithoutCancel(r.Context()), "csv-report "+label, func(ctx context.Context) (any, error) {
		s.mu.RLock()
		rep := reporter.New(s.adapter, s.repCfg, s.cat, s.log)
		s.mu.RUnlock()

		res, err := rep.Run(ctx, label, outPath, req.Params, req.Config)
		if err != nil {
			return nil, err
		}
		return map[string]any{"path": res.Path, "rows": res.Rows}, nil
	})

	respondJSON(w, http.StatusAccepted, startReportResponse{
		JobID:  info.ID,
		Status: string(info.Status),
		Path:   outPath,
	})
}

func reportFileName(label string, ts time.Time) string {
	return fmt.Sprintf("%s_%s.csv", strings.ToLower(label), ts.Format("20060102T150405Z"))
}
