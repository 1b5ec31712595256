package api

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/importer"
	"github.com/dgallion1/mdnotebook/internal/render"
	"github.com/dgallion1/mdnotebook/internal/sections"
)

var exportTmpl = template.Must(template.New("export").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
{{.Body}}
</body>
</html>
`))

// handleExport renders the whole notebook as a standalone HTML page.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Document(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := render.Markdown(doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="notebook.html"`)
	}
	err = exportTmpl.Execute(w, struct {
		Title string
		Body  template.HTML
	}{Title: sections.DefaultTitle, Body: template.HTML(body)})
	if err != nil {
		s.log.Error("render export", "error", err)
	}
}

// handleImport reads a multipart "file" upload and appends it as a page.
// The optional "title" field overrides the title taken from the file.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupported(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filename), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	page, err := importer.Import(data, filename, r.FormValue("title"), importer.Options{
		PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.svc.Import(r.Context(), page.Title, page.Body); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "title": page.Title})
}

func sanitizeFilename(name string) string {
	// Browsers may send a full client path; keep only the base name.
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
