package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/manifest"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show the declaration tables of a manifest",
		Long: `Load a component manifest and print, for every defined tag, the
component it is bound to, its version, the component it extends and the
attributes its elements observe.

Flags:
  --manifest PATH   Manifest file (default: manifest from elements.yaml)
  --prefix PREFIX   Tag prefix for components without a tag`,
		Usage: "elements inspect [--manifest PATH] [--prefix PREFIX]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	rest, opts, err := parseManifestArgs(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument %q", rest[0])
	}
	opts, err = opts.resolve()
	if err != nil {
		return err
	}
	m, reg, classes, err := opts.load()
	if err != nil {
		return err
	}
	return inspect(os.Stdout, m, reg, classes, opts.prefix)
}

func inspect(w io.Writer, m *manifest.Manifest, reg *element.Registry, classes map[string]*element.Class, prefix string) error {
	byTag := make(map[string]manifest.Component, len(m.Components))
	for _, c := range m.Components {
		byTag[c.TagFor(prefix)] = c
	}

	for i, tag := range reg.Tags() {
		c := byTag[tag]
		class := classes[c.Name]
		if i > 0 {
			fmt.Fprintln(w)
		}
		version := c.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s (%s %s)\n", tag, c.Name, version)
		if parent := class.Extends(); parent != nil {
			fmt.Fprintf(w, "  extends: %s\n", parent.Name())
		}
		if styles := class.Styles(); len(styles) > 0 {
			fmt.Fprintf(w, "  styles:  %d\n", len(styles))
		}

		observed := class.ObservedAttributes()
		if len(observed) == 0 {
			fmt.Fprintln(w, "  no observed attributes")
			continue
		}
		fmt.Fprintf(w, "  %-16s %-16s %-8s %s\n", "ATTRIBUTE", "PROPERTY", "TYPE", "REFLECT")
		for _, attr := range observed {
			d, ok := class.Declaration(attr)
			if !ok {
				fmt.Fprintf(w, "  %-16s %-16s %-8s %s\n", attr, "-", "-", "-")
				continue
			}
			reflect := "no"
			if d.Reflect {
				reflect = "yes"
			}
			fmt.Fprintf(w, "  %-16s %-16s %-8s %s\n", d.Attr, d.Prop, d.Type, reflect)
		}
	}
	return nil
}
