package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/elements/cmd/elements/internal/config"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/manifest"
)

// manifestOptions selects the manifest a command works on.
type manifestOptions struct {
	manifest string
	prefix   string
}

// parseManifestArgs extracts --manifest and --prefix and returns the
// remaining positional arguments.
func parseManifestArgs(args []string) ([]string, manifestOptions, error) {
	var opts manifestOptions
	var rest []string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--manifest" || arg == "--prefix":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--manifest" {
				opts.manifest = args[i+1]
			} else {
				opts.prefix = args[i+1]
			}
			i++
		case strings.HasPrefix(arg, "--manifest="):
			opts.manifest = strings.TrimPrefix(arg, "--manifest=")
		case strings.HasPrefix(arg, "--prefix="):
			opts.prefix = strings.TrimPrefix(arg, "--prefix=")
		case strings.HasPrefix(arg, "--"):
			return nil, opts, fmt.Errorf("unknown flag: %s", arg)
		default:
			rest = append(rest, arg)
		}
	}
	return rest, opts, nil
}

// resolve fills unset options from elements.yaml when run inside a module.
func (o manifestOptions) resolve() (manifestOptions, error) {
	if o.manifest != "" && o.prefix != "" {
		return o, nil
	}
	root, err := config.FindProjectRoot()
	if err != nil {
		if o.manifest == "" {
			return o, fmt.Errorf("no manifest given and %w", err)
		}
		return o, nil
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return o, fmt.Errorf("failed to load config: %w", err)
	}
	if o.manifest == "" {
		o.manifest = cfg.Manifest
	}
	if o.prefix == "" {
		o.prefix = cfg.Prefix
	}
	return o, nil
}

// load reads the manifest and defines its components in a new registry.
func (o manifestOptions) load() (*manifest.Manifest, *element.Registry, map[string]*element.Class, error) {
	m, err := manifest.Load(o.manifest)
	if err != nil {
		return nil, nil, nil, err
	}
	reg := element.NewRegistry()
	classes, err := m.Define(reg, o.prefix)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, reg, classes, nil
}
