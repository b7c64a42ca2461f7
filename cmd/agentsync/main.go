// Package main is the entry point for the agentsync CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/agentsync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
