package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/textcat/internal/jobs"
	"github.com/dmitrymomot/textcat/internal/reporter"
	"github.com/dmitrymomot/textcat/pkg/catalog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFromError(err), errorResponse{Error: err.Error()})
}

// statusFromError translates domain errors into HTTP status codes.
// Missing things are 404, caller mistakes 400, everything else 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrMissingText),
		errors.Is(err, catalog.ErrUnknownLabel),
		errors.Is(err, reporter.ErrUnknownQuery),
		errors.Is(err, reporter.ErrUnknownCSVConfig),
		errors.Is(err, jobs.ErrUnknownJob):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidLanguage),
		errors.Is(err, catalog.ErrEmptyLabel),
		errors.Is(err, catalog.ErrEmptyLanguage),
		errors.Is(err, catalog.ErrValidation),
		errors.Is(err, catalog.ErrFormat),
		errors.Is(err, reporter.ErrEmptyQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
