package render

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// HTML draws full pages from the embedded templates.
type HTML struct {
	tmpl *template.Template
}

func NewHTML() (*HTML, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"price": FormatPrice,
		"asset": assetURL,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &HTML{tmpl: t}, nil
}

func (h *HTML) Render(w io.Writer, p Page) error {
	if err := checkPage(p); err != nil {
		return err
	}
	return h.tmpl.ExecuteTemplate(w, "layout", p)
}

// assetURL makes relative image paths root-relative so they resolve the
// same from every page.
func assetURL(src string) string {
	if src == "" || strings.HasPrefix(src, "/") || strings.Contains(src, "://") {
		return src
	}
	return "/" + src
}

var errPageMode = errors.New("page view does not match its mode")

func checkPage(p Page) error {
	switch p.Mode {
	case ModeCatalog:
		if p.Catalog == nil {
			return errPageMode
		}
	case ModeCart:
		if p.Cart == nil {
			return errPageMode
		}
	default:
		return errPageMode
	}
	return nil
}
