package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/catalog.html
var templates embed.FS

var catalogTemplate = template.Must(template.ParseFS(templates, "templates/catalog.html"))

// RenderHTML writes both tables of views as one HTML document.
func RenderHTML(w io.Writer, views Views) error {
	return catalogTemplate.ExecuteTemplate(w, "catalog.html", views)
}
