// Command pytd is the umbrella tool for pytd type declaration files:
// parsing, checking, formatting, watching, and an interactive loop.
package main

import (
	"os"

	"github.com/mvcisback/pytypedecl/cmd/pytd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
