// Package main implements the vizgen command, which serves the concept
// visualizer HTTP API and can run single visualization jobs from the shell.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
