package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/internal/checker"
	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/logging"
	"github.com/thoreinstein/tsfix/internal/report"
	"github.com/thoreinstein/tsfix/internal/tsdiag"
)

var (
	checkJSON bool
	checkTop  int
)

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"output the ranking as JSON")
	checkCmd.Flags().IntVar(&checkTop, "top", 0,
		"number of files in the error ranking (default from config)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the checker and rank files by error count",
	Long: `Run the type checker and group its diagnostics by file, worst file
first. Nothing is patched; use this to see where the errors live before
running 'tsfix run'.`,
	Example: `  tsfix check
  tsfix check --json
  tsfix check --top 25`,
	RunE: runCheck,
}

func runCheck(cobraCmd *cobra.Command, _ []string) error {
	ctx := cobraCmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	chk := checker.New(checker.Config{
		Command: cfg.Checker.Command,
		Args:    cfg.Checker.Args,
	}, log)

	out, err := chk.Run(ctx)
	if err != nil {
		return errors.NewSystemError(err,
			"Check that "+chk.CommandLine()+" runs in this directory")
	}
	set := tsdiag.Parse(out)

	format := report.FormatText
	if checkJSON {
		format = report.FormatJSON
	}
	top := checkTop
	if top == 0 {
		top = cfg.Top
	}
	return report.NewReporter(cobraCmd.OutOrStdout(), format, top).Ranking(set)
}
