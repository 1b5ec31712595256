package api

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	emptyTitle = "New Page"
	emptyBody  = "<p><em>Create your first page.</em></p>"
)

type indexData struct {
	Pages        []string
	InitialTitle string
	InitialHTML  template.HTML // page bodies are the owner's own editor HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	pages, err := s.svc.Pages(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := indexData{
		Pages:        make([]string, 0, len(pages)),
		InitialTitle: emptyTitle,
		InitialHTML:  emptyBody,
	}
	for _, p := range pages {
		data.Pages = append(data.Pages, p.Title)
	}
	if len(pages) > 0 {
		data.InitialTitle = pages[0].Title
		data.InitialHTML = template.HTML(pages[0].Body)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("render index", "error", err)
	}
}
