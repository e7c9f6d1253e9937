// Package web embeds the HTML templates served by cmd/api.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var Templates embed.FS

// ParseTemplates parses every embedded template with funcs available.
func ParseTemplates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(Templates, "templates/*.tmpl")
}
