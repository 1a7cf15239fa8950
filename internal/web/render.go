package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/starford/folio/internal/contact"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates, each combined with the layout and shared partials.
const (
	pageIndex   = "index.html"
	pageProject = "project.html"
	pageContact = "contact.html"
)

var pageNames = []string{pageIndex, pageProject, pageContact}

// newMarkdown returns the renderer for section prose. Raw HTML is dropped and
// single newlines become line breaks.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
}

func parsePages(md goldmark.Markdown) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"markdown": func(s string) template.HTML {
			var buf bytes.Buffer
			if err := md.Convert([]byte(s), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(s))
			}
			return template.HTML(buf.String())
		},
		"partialURL":   partialURL,
		"pendingLabel": func() string { return contact.LabelPending },
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// partialURL maps a listing URL onto the cards fragment endpoint with the
// same query.
func partialURL(listing string) string {
	return "/partials/cards" + strings.TrimPrefix(listing, "/")
}

// render executes the named template of page into a buffer and writes it
// with status. Template failures become a 500 before anything is sent.
func (h *Handler) render(w http.ResponseWriter, status int, page, name string, data any) {
	t, ok := h.pages[page]
	if !ok {
		h.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render failed",
			slog.String("page", page),
			slog.String("template", name),
			slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
