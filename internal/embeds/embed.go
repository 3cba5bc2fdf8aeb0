// Package embeds holds files compiled into the beacon binary.
package embeds

import (
	"embed"
	"html/template"
)

//go:embed templates
var content embed.FS

// ParseTemplate parses templates from the embedded filesystem
func ParseTemplate(patterns ...string) (*template.Template, error) {
	return template.ParseFS(content, patterns...)
}
