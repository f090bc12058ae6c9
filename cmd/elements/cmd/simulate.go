package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/elements/cmd/elements/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Run a scripted lifecycle scenario",
		Long: `Define the components of a manifest, then run a scenario against an
in-memory document and print a trace of what happened.

A scenario is a YAML list of steps:

  steps:
    - mount: ui-badge
      attrs: {label: Inbox}
    - set: {count: "3"}
    - move: true          # remove and reinsert in the same turn
    - expect: "Inbox (3)" # drain the loop, then compare text
    - detach: true

Flags:
  --manifest PATH   Manifest file (default: manifest from elements.yaml)
  --prefix PREFIX   Tag prefix for components without a tag`,
		Usage: "elements simulate <scenario.yaml> [--manifest PATH] [--prefix PREFIX]",
		Run:   runSimulate,
	})
}

func runSimulate(args []string) error {
	rest, opts, err := parseManifestArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("scenario file is required\n\nUsage: elements simulate <scenario.yaml>")
	}
	opts, err = opts.resolve()
	if err != nil {
		return err
	}
	_, reg, _, err := opts.load()
	if err != nil {
		return err
	}
	s, err := scenario.Load(rest[0])
	if err != nil {
		return err
	}

	rep, err := scenario.Run(s, reg, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("\nresult: text=%q mounted=%v unmounted=%v tasks=%d\n", rep.Text, rep.Mounted, rep.Unmounted, rep.Tasks)
	return nil
}
