package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/mdnotebook/internal/notebook"
	"github.com/dgallion1/mdnotebook/internal/sections"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps notebook errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sections.ErrInvalidInput), errors.Is(err, sections.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, sections.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, notebook.ErrTitleExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as a JSON error. Server-side failures are logged and their
// detail is not echoed to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		jsonError(w, "internal error", code)
		return
	}
	jsonError(w, err.Error(), code)
}
