// Package main is the entry point for the tsfix CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/tsfix/cmd/tsfix/commands"
	"github.com/thoreinstein/tsfix/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
