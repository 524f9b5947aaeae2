package server

import (
	"html/template"
	"net/http"
	"strings"

	"trendy/internal/core"
	"trendy/internal/render"
)

// pageData is the model for the single HTML page
type pageData struct {
	City    string
	Mode    core.Mode
	Modes   []core.Mode
	Content template.HTML
	Error   string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Trending places{{if .City}} in {{.City}}{{end}}</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    form { display: flex; gap: .5rem; margin-bottom: 2rem; }
    .report p { direction: rtl; text-align: right; }
    .error { color: #b00020; }
    pre { white-space: pre-wrap; background: #f5f5f5; padding: 1rem; }
  </style>
</head>
<body>
  <h1>Trending places</h1>
  <form method="post" action="/generate">
    <input name="city" value="{{.City}}" placeholder="City">
    <select name="mode">
      {{range .Modes}}<option value="{{.}}"{{if eq . $.Mode}} selected{{end}}>{{.}}</option>{{end}}
    </select>
    <button type="submit">Generate</button>
  </form>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <div class="report">{{.Content}}</div>
</body>
</html>`))

// handleHomePage renders the empty form
func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{City: s.defaults.City, Mode: s.defaults.Mode})
}

// handleGeneratePage runs the pipeline and renders the result as HTML
func (s *Server) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{City: s.defaults.City, Mode: s.defaults.Mode, Error: "invalid form"})
		return
	}

	city := strings.TrimSpace(r.FormValue("city"))
	mode, err := core.ParseMode(r.FormValue("mode"))
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{City: city, Mode: s.defaults.Mode, Error: err.Error()})
		return
	}

	run, err := s.execute(r.Context(), city, mode)
	if run == nil {
		status, failure := failureResponse(run, err)
		s.renderPage(w, status, pageData{City: city, Mode: mode, Error: failure.Diagnostic})
		return
	}

	status := http.StatusOK
	if err != nil {
		status, _ = failureResponse(run, err)
	}
	s.renderPage(w, status, pageData{
		City:    run.City,
		Mode:    run.Mode,
		Content: renderMarkdown(render.Markdown(run, render.Options{ShowCandidates: true})),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	data.Modes = []core.Mode{core.ModeGrounded, core.ModeUngrounded}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("Failed to render page", "error", err)
	}
}
