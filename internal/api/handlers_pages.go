package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/render"
	"github.com/dgallion1/mdnotebook/internal/sections"
)

// maxJSONBody caps request bodies for the JSON endpoints.
const maxJSONBody = 8 << 20

type saveRequest struct {
	OldTitle string `json:"oldTitle"`
	NewTitle string `json:"newTitle"`
	HTML     string `json:"html"`
}

type newRequest struct {
	Title string `json:"title"`
}

type renameRequest struct {
	OldTitle string `json:"oldTitle"`
	NewTitle string `json:"newTitle"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("title") {
		s.fail(w, r, fmt.Errorf("missing title: %w", sections.ErrInvalidInput))
		return
	}
	p, err := s.svc.Page(r.Context(), q.Get("title"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"title": p.Title, "html": p.Body})
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	titles, err := s.svc.Titles(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": titles})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.Save(r.Context(), req.OldTitle, req.NewTitle, req.HTML); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.Create(r.Context(), req.Title); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.Rename(r.Context(), req.OldTitle, req.NewTitle); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type searchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// handleSearch does a case-insensitive substring search over titles and the
// plain text of page bodies. Results keep document order.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.fail(w, r, fmt.Errorf("missing q: %w", sections.ErrInvalidInput))
		return
	}
	pages, err := s.svc.Pages(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	needle := strings.ToLower(q)
	hits := []searchHit{}
	for _, p := range pages {
		text := render.PlainText(p.Body)
		idx := strings.Index(strings.ToLower(text), needle)
		if idx < 0 && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		hits = append(hits, searchHit{Title: p.Title, Snippet: snippet(text, idx, len(needle))})
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": hits})
}

// snippet returns up to 40 bytes of context either side of a match, or the
// start of text when there is no body match. It never splits a rune.
func snippet(text string, idx, n int) string {
	const span = 40
	if idx < 0 {
		idx, n = 0, 0
	}
	start := min(max(idx-span, 0), len(text))
	end := max(min(idx+n+span, len(text)), start)
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}
	out := strings.ReplaceAll(text[start:end], "\n", " ")
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
