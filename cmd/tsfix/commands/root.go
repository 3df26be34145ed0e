// Package commands implements the CLI commands for tsfix.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/cmd"
	"github.com/thoreinstein/tsfix/internal/config"
	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the global config file")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("tsfix version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
}

var rootCmd = &cobra.Command{
	Use:   "tsfix",
	Short: "Fix recurring TypeScript type errors automatically",
	Long: `tsfix runs your project's type checker, groups the reported errors
by file, and applies a small library of conservative textual rewrites
for error shapes that recur by the hundreds in generated-schema
codebases: query results inferred as never, mutation payloads the
checker rejects wholesale, and unnarrowed catch-block values.

Every rewrite is idempotent, so re-running tsfix is always safe. After
patching, the checker runs again and the report shows how many errors
the pass eliminated.`,
	Example: `  # See what is broken without touching anything
  tsfix check

  # Fix everything the rules recognize
  tsfix run

  # Preview the rewrites as diffs
  tsfix run --dry-run

  # Only touch files you already have staged
  tsfix run --staged-only`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either --quiet or --verbose, not both")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("TSFIX_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadSettings resolves the effective configuration: global file (or
// defaults) overlaid with the nearest project manifest.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.NewSystemError(err, "cannot determine working directory")
	}

	proj, err := config.FindProject(cwd)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	if errs := config.ValidateProject(proj); len(errs) > 0 {
		return nil, errors.NewConfigError(errs[0])
	}
	cfg.Merge(proj)

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, errors.NewConfigError(errs[0])
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
