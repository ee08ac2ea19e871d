package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/dmitrymomot/textcat/internal/config"
	"github.com/dmitrymomot/textcat/internal/reporter"
)

const adminTokenHeader = "X-Admin-Token"

// requireAdmin guards administrative endpoints with a shared token. When no
// token is configured the endpoints are disabled entirely.
func (s *Service) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "admin endpoints are disabled"})
			return
		}
		token := r.Header.Get(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid admin token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ReloadCatalog re-reads the messages file and swaps the catalog in. A failed
// reload leaves the previous catalog untouched.
func (s *Service) ReloadCatalog() error {
	cat, err := config.BuildCatalog(s.cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()

	s.log.Info("catalog reloaded", "path", s.cfg.MessagesPath)
	return nil
}

func (s *Service) handleReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := s.ReloadCatalog(); err != nil {
		s.log.Error("catalog reload failed", "error", err.Error())
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"path":     s.cfg.MessagesPath,
	})
}

// handleReloadReporterConfig re-reads the query and CSV-spec files.
func (s *Service) handleReloadReporterConfig(w http.ResponseWriter, r *http.Request) {
	repCfg, err := reporter.FromFiles(s.cfg.QueriesPath, s.cfg.CSVConfigsPath)
	if err != nil {
		s.log.Error("reporter config reload failed", "error", err.Error())
		respondError(w, err)
		return
	}

	s.mu.Lock()
	s.repCfg = repCfg
	s.mu.Unlock()

	s.log.Info("reporter config reloaded",
		"queries_path", s.cfg.QueriesPath,
		"csv_configs_path", s.cfg.CSVConfigsPath,
	)
	respondJSON(w, http.StatusOK, map[string]any{"reloaded": true})
}

// handleInfo reports build and runtime details.
func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"app_name":       s.cfg.AppName,
		"environment":    s.cfg.Environment,
		"version":        Version,
		"started_at":     s.startedAt.Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}
