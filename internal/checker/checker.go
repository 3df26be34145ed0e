// Package checker runs the external TypeScript compiler and captures
// its diagnostic output for parsing.
package checker

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/thoreinstein/tsfix/internal/errors"
)

// DefaultCommand and DefaultArgs invoke the project-local compiler the
// way most TypeScript repos do.
var (
	DefaultCommand = "npx"
	DefaultArgs    = []string{"tsc", "--noEmit"}
)

// Config describes how to invoke the type checker.
type Config struct {
	// Command is the executable name. Defaults to DefaultCommand.
	Command string

	// Args are the command arguments. Defaults to DefaultArgs.
	Args []string

	// Dir is the working directory for the invocation. Empty means the
	// current directory.
	Dir string
}

// Checker invokes the external type checker.
type Checker struct {
	cfg Config
	log *slog.Logger
}

// New creates a Checker, filling in defaults for unset Config fields.
func New(cfg Config, log *slog.Logger) *Checker {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if len(cfg.Args) == 0 {
		cfg.Args = DefaultArgs
	}
	if log == nil {
		log = slog.Default()
	}
	return &Checker{cfg: cfg, log: log}
}

// CommandLine returns the full invocation for display.
func (c *Checker) CommandLine() string {
	return strings.Join(append([]string{c.cfg.Command}, c.cfg.Args...), " ")
}

// Run executes the checker and returns its raw diagnostic output.
//
// tsc exits non-zero whenever it finds errors, so a non-zero exit with
// captured output is a successful run from our point of view. Failure
// to start the process, a context cancellation, or a signal killing
// the checker mid-run is reported as an error wrapped around
// ErrCheckerFailed; output from a killed checker may be truncated and
// is never returned.
//
// Diagnostics are read from stderr when present, falling back to
// stdout; tsc historically writes to stdout but wrappers and npx
// proxies sometimes reroute.
func (c *Checker) Run(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.cfg.Command, c.cfg.Args...)
	cmd.Dir = c.cfg.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("running type checker", "command", c.CommandLine())

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(errors.ErrCheckerFailed, ctx.Err().Error())
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never started: missing binary, bad
			// permissions, invalid working directory.
			return "", errors.Wrapf(errors.ErrCheckerFailed, "starting %q: %v", c.cfg.Command, err)
		}
		if exitErr.ExitCode() < 0 {
			// Killed by a signal. Whatever output was captured may be
			// truncated mid-diagnostic, so it cannot be trusted.
			return "", errors.Wrapf(errors.ErrCheckerFailed, "%q killed: %v", c.cfg.Command, err)
		}
		c.log.Debug("checker exited non-zero", "code", exitErr.ExitCode())
	}

	if stderr.Len() > 0 {
		return stderr.String(), nil
	}
	return stdout.String(), nil
}
