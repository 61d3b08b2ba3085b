// Command schema-generator refreshes the embedded persisted-state schema
// under schema/. Run from the repository root via go:generate.
package main

import (
	"fmt"
	"os"

	"github.com/grovetools/watchlist/watchlist"
)

func main() {
	data, err := watchlist.GenerateSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate schema: %v\n", err)
		os.Exit(1)
	}

	out := "schema/watchlist.schema.json"
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", out)
}
