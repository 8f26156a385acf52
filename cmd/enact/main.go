// Package main is the entry point for the enact pricing analyzer.
package main

import (
	"os"

	"github.com/ejezie/Enact-Pricing/cmd/enact/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
