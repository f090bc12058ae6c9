package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional configuration file.
const FileName = "elements.yaml"

// DefaultManifest is the manifest path used when none is configured.
const DefaultManifest = "components.yaml"

// Config represents the optional elements.yaml configuration.
type Config struct {
	Manifest string    `yaml:"manifest,omitempty"`
	Prefix   string    `yaml:"prefix,omitempty"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Manifest   string
	Prefix     string
	LogLevel   string
	Verbose    bool
}

// LoadOptional reads elements.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads elements.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	manifest := strings.TrimSpace(cfg.Manifest)
	if manifest == "" {
		manifest = DefaultManifest
	}
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(dir, manifest)
	}

	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix(modulePath, dir)
	}
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = "info"
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Manifest:   manifest,
		Prefix:     prefix,
		LogLevel:   level,
		Verbose:    cfg.Log.Verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultPrefix derives a tag prefix from the last element of the module
// path, ignoring a major version suffix.
func defaultPrefix(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	return sanitizePrefix(base)
}

func sanitizePrefix(segment string) string {
	var out []rune
	for _, r := range strings.TrimSpace(segment) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			// Hyphens would split the prefix from the component name.
		}
	}
	if len(out) == 0 {
		return "x"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'x'}, out...)
	}
	return string(out)
}

func validatePrefix(prefix string) error {
	if prefix[0] < 'a' || prefix[0] > 'z' {
		return fmt.Errorf("prefix must start with a lowercase letter (got %q)", prefix)
	}
	for _, r := range prefix {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("prefix contains invalid character %q in %q", r, prefix)
		}
	}
	return nil
}
