// Package web holds the calculator page served at the site root.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed index.html
var files embed.FS

// Page is the data rendered into the calculator page.
type Page struct {
	Operators     []string
	CalculatePath string
}

// Renderer renders the calculator page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(files, "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
