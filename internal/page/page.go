// Package page renders the landing page served at /.
//
// The server only depends on the Renderer interface, so the presentation can be
// swapped without touching the handlers: the embedded default template, an
// operator supplied html/template file, or any other implementation.
package page

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"

	"beacon/internal/config"
	"beacon/internal/embeds"
)

const embeddedTemplate = "landing.html"

// Data is the view model handed to the template
type Data struct {
	Title      string
	Heading    string
	Subheading string
	Body       string
	Footer     string

	ShowRenderInfo bool
	RenderedAt     time.Time
	Port           int
	Version        string
}

// Renderer writes a complete HTML document for data to w
type Renderer interface {
	Render(w io.Writer, data Data) error
}

// NewData copies the static presentation fields out of the page config
func NewData(cfg config.PageConfig) Data {
	return Data{
		Title:          cfg.Title,
		Heading:        cfg.Heading,
		Subheading:     cfg.Subheading,
		Body:           cfg.Body,
		Footer:         cfg.Footer,
		ShowRenderInfo: cfg.ShowRenderInfo,
	}
}

// TemplateRenderer renders a parsed html/template
type TemplateRenderer struct {
	tmpl *template.Template
	name string
}

// NewEmbedded returns a renderer for the template compiled into the binary
func NewEmbedded() (*TemplateRenderer, error) {
	tmpl, err := embeds.ParseTemplate("templates/" + embeddedTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl, name: embeddedTemplate}, nil
}

// NewFromFile parses the html/template at path
func NewFromFile(path string) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template %s: %w", path, err)
	}
	return &TemplateRenderer{tmpl: tmpl, name: filepath.Base(path)}, nil
}

// FromConfig picks the file template when one is configured, the embedded one otherwise
func FromConfig(cfg config.PageConfig) (*TemplateRenderer, error) {
	if cfg.TemplatePath != "" {
		return NewFromFile(cfg.TemplatePath)
	}
	return NewEmbedded()
}

// Render executes the template into w
func (r *TemplateRenderer) Render(w io.Writer, data Data) error {
	return r.tmpl.ExecuteTemplate(w, r.name, data)
}
