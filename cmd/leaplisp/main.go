// Package main provides the leaplisp command.
package main

import (
	"os"

	"github.com/leapstack-labs/leaplisp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
