// Package main is the entry point for the gradeline CLI.
package main

import (
	"os"

	"github.com/gradeline/gradeline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
