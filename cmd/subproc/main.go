// Package main is the entry point for the subproc CLI.
package main

import (
	"errors"
	"os"

	"github.com/runger/subproc/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) && exitErr.Code > 0 {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
