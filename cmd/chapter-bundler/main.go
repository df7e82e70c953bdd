// Command chapter-bundler bundles per-chapter JSON files into an aggregated
// dataset and a chapter index.
package main

import (
	"os"

	"github.com/custodia-labs/chapter-bundler/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
