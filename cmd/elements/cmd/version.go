package cmd

import (
	"fmt"
	"runtime/debug"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  `Show the CLI version, build time and Go toolchain.`,
		Usage: "elements version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	printVersion()
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("Go: %s\n", info.GoVersion)
	}
	return nil
}
