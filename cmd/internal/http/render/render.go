package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const (
	IndexTemplate  = "index.html"
	UpdateTemplate = "update.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer plugs html/template into echo. Output is auto-escaped.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
