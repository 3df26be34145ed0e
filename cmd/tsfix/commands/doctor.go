package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/internal/config"
	"github.com/thoreinstein/tsfix/internal/doctor"
	tsfixerrors "github.com/thoreinstein/tsfix/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment and configuration issues",
	Long: `Run diagnostic checks on the tsfix environment.

Verifies the configured type checker is installed, a TypeScript project
is reachable from the working directory, and the configuration layers
parse and validate.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(cobraCmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return tsfixerrors.NewSystemError(err, "cannot determine working directory")
	}

	cfg, cfgErr := config.Load(configPath)
	if cfg != nil {
		proj, projErr := config.FindProject(cwd)
		if projErr == nil {
			cfg.Merge(proj)
		}
	}

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{Config: cfg, Err: cfgErr})
	runner.AddCheck(&doctor.ManifestCheck{Dir: cwd})
	if cfg != nil {
		runner.AddCheck(&doctor.CheckerBinaryCheck{Command: cfg.Checker.Command})
	}
	runner.AddCheck(&doctor.TSConfigCheck{Dir: cwd})
	runner.AddCheck(&doctor.GitCheck{Dir: cwd})

	report := runner.Run()

	if err := outputDoctorReport(cobraCmd.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return tsfixerrors.NewExitError(errDoctorErrors, tsfixerrors.ExitSystem)
	}
	if report.HasWarnings() {
		return tsfixerrors.NewExitError(errDoctorWarnings, tsfixerrors.ExitUser)
	}
	return nil
}

func outputDoctorReport(out io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	return outputDoctorText(out, report)
}

func outputDoctorText(out io.Writer, report *doctor.Report) error {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(out, "%s [%s] %s: %s\n",
			statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(out, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
