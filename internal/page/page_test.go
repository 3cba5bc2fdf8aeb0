package page

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"beacon/internal/config"
)

func testPageConfig() config.PageConfig {
	return config.PageConfig{
		Title:      "Test Title",
		Heading:    "Test Heading",
		Subheading: "Test Subheading",
		Body:       "Test body",
		Footer:     "Test footer",
	}
}

func TestEmbeddedRender(t *testing.T) {
	r, err := NewEmbedded()
	if err != nil {
		t.Fatalf("NewEmbedded() error = %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, NewData(testPageConfig())); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := buf.String()
	for _, want := range []string{"<html", "<title>Test Title</title>", "Test Heading", "Test Subheading", "Test body", "Test footer"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(body, `class="render-info"`) || strings.Contains(body, "Rendered at") {
		t.Error("render info should be hidden unless enabled")
	}
}

func TestEmbeddedRenderInfo(t *testing.T) {
	r, err := NewEmbedded()
	if err != nil {
		t.Fatalf("NewEmbedded() error = %v", err)
	}

	cfg := testPageConfig()
	cfg.ShowRenderInfo = true
	data := NewData(cfg)
	data.RenderedAt = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	data.Port = 8080
	data.Version = "v9.9.9"

	var buf bytes.Buffer
	if err := r.Render(&buf, data); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := buf.String()
	for _, want := range []string{`class="render-info"`, "2025-03-04 05:06:07 UTC", "on port 8080", "v9.9.9"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderEscapesContent(t *testing.T) {
	r, err := NewEmbedded()
	if err != nil {
		t.Fatalf("NewEmbedded() error = %v", err)
	}

	cfg := testPageConfig()
	cfg.Heading = "<script>alert(1)</script>"

	var buf bytes.Buffer
	if err := r.Render(&buf, NewData(cfg)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("heading was not HTML escaped")
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.html")
	if err := os.WriteFile(custom, []byte(`<html><body>custom {{.Heading}}</body></html>`), 0600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	broken := filepath.Join(dir, "broken.html")
	if err := os.WriteFile(broken, []byte(`<html>{{.Heading</html>`), 0600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	tests := []struct {
		name         string
		templatePath string
		wantErr      bool
		wantContains string
	}{
		{name: "embedded default", templatePath: "", wantContains: "<!DOCTYPE html>"},
		{name: "custom file", templatePath: custom, wantContains: "custom Test Heading"},
		{name: "missing file", templatePath: filepath.Join(dir, "missing.html"), wantErr: true},
		{name: "unparseable file", templatePath: broken, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPageConfig()
			cfg.TemplatePath = tt.templatePath

			r, err := FromConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var buf bytes.Buffer
			if err := r.Render(&buf, NewData(cfg)); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.wantContains) {
				t.Errorf("rendered page missing %q:\n%s", tt.wantContains, buf.String())
			}
		})
	}
}
