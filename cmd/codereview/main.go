// Package main is the entry point for the codereview CLI binary.
package main

import (
	"os"

	"github.com/irahardianto/codereview/cmd/codereview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
