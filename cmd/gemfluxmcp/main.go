// Command gemfluxmcp is the gem-flux-mcp server entry point.
package main

import (
	"os"

	"github.com/jplfaria/gem-flux-mcp/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
