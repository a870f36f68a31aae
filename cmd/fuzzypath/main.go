// Command fuzzypath normalizes, compares and deduplicates path-like strings.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errDifferent) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
