// Package main is the jobdeck entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/jobdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
