// Package web serves the server-rendered HTML pages of the directory along
// with the SEO artifacts (sitemap, manifest, robots).
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed contribute.md
var contributeMD []byte

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
	site config.SiteConfig
}

// NewRenderer parses the embedded templates with the page helper funcs.
func NewRenderer(site config.SiteConfig) (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"categoryLabel": func(c models.Category) string { return c.Label() },
		"categoryColor": func(c models.Category) string { return c.Color() },
		"jsonld":        jsonLD,
	}).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, site: site}, nil
}

// Render executes the named template into a buffer first so a template error
// never emits a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "template", name, "error", err)
	}
}

// jsonLD marshals a schema block into a structured-data script tag.
func jsonLD(v any) template.HTML {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON-LD", "error", err)
		return ""
	}
	return template.HTML(`<script type="application/ld+json">` + string(data) + `</script>`)
}

// renderContribute converts the embedded contribution guide from Markdown.
func renderContribute() (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(contributeMD, &buf); err != nil {
		return "", fmt.Errorf("failed to render contribute page: %w", err)
	}
	return template.HTML(buf.String()), nil
}
