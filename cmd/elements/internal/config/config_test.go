package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module github.com/acme/Widget-Kit/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.ModulePath != "github.com/acme/Widget-Kit/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.Prefix != "widgetkit" {
		t.Errorf("Prefix = %q, want widgetkit", cfg.Prefix)
	}
	if want := filepath.Join(dir, DefaultManifest); cfg.Manifest != want {
		t.Errorf("Manifest = %q, want %q", cfg.Manifest, want)
	}
	if cfg.LogLevel != "info" || cfg.Verbose {
		t.Errorf("log = %q/%v, want info/false", cfg.LogLevel, cfg.Verbose)
	}
}

func TestResolve_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/app\n")
	writeFile(t, dir, FileName, `
manifest: ui/manifest.yaml
prefix: ui
log:
  level: debug
  verbose: true
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := filepath.Join(dir, "ui", "manifest.yaml"); cfg.Manifest != want {
		t.Errorf("Manifest = %q, want %q", cfg.Manifest, want)
	}
	if cfg.Prefix != "ui" || cfg.LogLevel != "debug" || !cfg.Verbose {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		gomod  string
		config string
	}{
		{"missing go.mod", "", ""},
		{"empty module", "go 1.24\n", ""},
		{"bad yaml", "module a.b/c\n", "prefix: [\n"},
		{"bad prefix", "module a.b/c\n", "prefix: UI\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.gomod != "" {
				writeFile(t, dir, "go.mod", tt.gomod)
			}
			if tt.config != "" {
				writeFile(t, dir, FileName, tt.config)
			}
			if _, err := Resolve(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.Manifest != "" || cfg.Prefix != "" {
		t.Errorf("cfg = %+v, want zero", cfg)
	}
}

func TestSanitizePrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"widgets", "widgets"},
		{"My_App", "myapp"},
		{"9lives", "x9lives"},
		{"---", "x"},
	}
	for _, tt := range tests {
		if got := sanitizePrefix(tt.in); got != tt.want {
			t.Errorf("sanitizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
