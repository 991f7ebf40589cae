package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed web/index.html
var webFS embed.FS

var indexTmpl = template.Must(template.ParseFS(webFS, "web/index.html"))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		MaxWords    int
		KeyRequired bool
	}{
		MaxWords:    s.cfg.Limits.MaxWords,
		KeyRequired: s.cfg.LLM.APIKey == "",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		logrus.Errorf("render index: %v", err)
	}
}
