package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

type textResponse struct {
	Label string `json:"label"`
	Lang  string `json:"lang"`
	Text  string `json:"text"`
}

// handleGetText resolves one label. The language comes from the lang query
// parameter, or from Accept-Language when absent.
func (s *Service) handleGetText(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	q := r.URL.Query()

	s.mu.RLock()
	defer s.mu.RUnlock()

	lang := q.Get("lang")
	if lang == "" {
		lang = catalog.ParseAcceptLanguage(r.Header.Get("Accept-Language"), s.availableLanguages())
	}

	var opts []catalog.ResolveOption
	if fb := q.Get("fallback"); fb != "" {
		opts = append(opts, catalog.WithFallback(fb))
	}
	if q.Has("default") {
		opts = append(opts, catalog.WithDefault(q.Get("default")))
	}
	if dom := q.Get("domain"); dom != "" {
		opts = append(opts, catalog.InDomain(dom))
	}

	text, err := s.cat.GetText(label, lang, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, textResponse{Label: label, Lang: lang, Text: text})
}

type formatRequest struct {
	Lang   string    `json:"lang"`
	Domain string    `json:"domain"`
	Params catalog.M `json:"params"`
}

// handleFormatText resolves a label and substitutes placeholders from the
// request body.
func (s *Service) handleFormatText(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	var req formatRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lang := req.Lang
	if lang == "" {
		lang = catalog.ParseAcceptLanguage(r.Header.Get("Accept-Language"), s.availableLanguages())
	}

	var opts []catalog.ResolveOption
	if req.Domain != "" {
		opts = append(opts, catalog.InDomain(req.Domain))
	}
	template, err := s.cat.GetText(label, lang, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	text, err := catalog.ReplacePlaceholders(template, req.Params)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, textResponse{Label: label, Lang: lang, Text: text})
}

// handleListLabels lists known labels. The domain query parameter scopes the
// listing, recursive=true includes nested domains.
func (s *Service) handleListLabels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.RLock()
	defer s.mu.RUnlock()

	domain := q.Get("domain")
	if domain == "" {
		domain = catalog.RootDomain
	}
	labels := s.cat.ListLabelsIn(domain, q.Get("recursive") == "true")
	respondJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

// handleLanguages lists languages present in the catalog, or for one label
// when the label query parameter is set.
func (s *Service) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if label := r.URL.Query().Get("label"); label != "" {
		langs, err := s.cat.LabelLanguages(label)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"label": label, "languages": langs})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"languages": s.cat.Languages()})
}

// availableLanguages feeds Accept-Language negotiation. Callers hold s.mu.
func (s *Service) availableLanguages() []string {
	langs := s.cat.Languages()
	if len(langs) == 0 {
		return []string{s.cat.DefaultLang()}
	}
	return langs
}
