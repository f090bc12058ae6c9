// Command elements inspects component manifests and simulates element
// lifecycles.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/elements/cmd/elements/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
