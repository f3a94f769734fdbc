package email

import (
	"embed"
	"html/template"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateLowStock corresponds to templates/low_stock.html
	TemplateLowStock Template = "low_stock"
)

// The templates ship inside the binary, so the working directory does not
// matter when a worker renders an email.
//
//go:embed templates/*.html
var templateFS embed.FS

// templates holds every parsed template, keyed by file name.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
