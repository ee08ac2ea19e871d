package handlers

import "net/http"

func (s *Service) handleListQueries(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	respondJSON(w, http.StatusOK, map[string]any{"queries": s.repCfg.QueryLabels()})
}

func (s *Service) handleListCSVConfigs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	respondJSON(w, http.StatusOK, map[string]any{"csv_configs": s.repCfg.CSVSpecLabels()})
}
