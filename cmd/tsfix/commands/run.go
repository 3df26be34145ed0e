package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/internal/checker"
	"github.com/thoreinstein/tsfix/internal/cli/prompt"
	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/fixer"
	"github.com/thoreinstein/tsfix/internal/git"
	"github.com/thoreinstein/tsfix/internal/logging"
	"github.com/thoreinstein/tsfix/internal/patch"
	"github.com/thoreinstein/tsfix/internal/paths"
	"github.com/thoreinstein/tsfix/internal/report"
	"github.com/thoreinstein/tsfix/internal/rules"
	"github.com/thoreinstein/tsfix/internal/tsdiag"
)

var (
	runDryRun      bool
	runJSON        bool
	runTop         int
	runBackup      bool
	runStagedOnly  bool
	runChangedOnly bool
	runPick        bool
	runInteractive bool
	runUntilClean  bool
	runMaxPasses   int
)

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false,
		"show pending rewrites as diffs without writing files")
	runCmd.Flags().BoolVar(&runJSON, "json", false,
		"output the run summary as JSON")
	runCmd.Flags().IntVar(&runTop, "top", 0,
		"number of files in the error ranking (default from config)")
	runCmd.Flags().BoolVar(&runBackup, "backup", false,
		"write a <file>.bak copy before rewriting each file")
	runCmd.Flags().BoolVar(&runStagedOnly, "staged-only", false,
		"only patch files staged in git")
	runCmd.Flags().BoolVar(&runChangedOnly, "changed-only", false,
		"only patch files modified relative to HEAD")
	runCmd.Flags().BoolVar(&runPick, "pick", false,
		"fuzzy-select which flagged files to patch")
	runCmd.Flags().BoolVar(&runInteractive, "interactive", false,
		"confirm each file before patching it")
	runCmd.Flags().BoolVar(&runUntilClean, "until-clean", false,
		"repeat patch passes until a pass stops making progress")
	runCmd.Flags().IntVar(&runMaxPasses, "max-passes", fixer.DefaultMaxPasses,
		"pass limit for --until-clean")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the checker and patch every file it flags",
	Long: `Run the type checker, apply the rule library to every flagged file,
then run the checker again and report how many errors the pass
eliminated.

Rules only rewrite sites they recognize with confidence; everything
else is left for a human. All rewrites are idempotent, so running this
twice never stacks assertions.`,
	Example: `  tsfix run
  tsfix run --dry-run
  tsfix run --backup --top 20
  tsfix run --staged-only --interactive
  tsfix run --until-clean --max-passes 3`,
	PreRunE: validateRunFlags,
	RunE:    runRun,
}

func validateRunFlags(_ *cobra.Command, _ []string) error {
	if runStagedOnly && runChangedOnly {
		return errors.NewUserError(nil, "flags --staged-only and --changed-only are mutually exclusive")
	}
	if runJSON && (runPick || runInteractive) {
		return errors.NewUserError(nil, "flags --pick and --interactive cannot be combined with --json")
	}
	if runDryRun && runBackup {
		return errors.NewUserError(nil, "--backup has no effect with --dry-run")
	}
	return nil
}

func runRun(cobraCmd *cobra.Command, _ []string) error {
	ctx := cobraCmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	registry := rules.DefaultRegistry(rules.Options{
		Entrypoint:      cfg.Rules.Entrypoint,
		MutationMethods: cfg.Rules.MutationMethods,
		Disabled:        cfg.Rules.Disabled,
	})

	chk := checker.New(checker.Config{
		Command: cfg.Checker.Command,
		Args:    cfg.Checker.Args,
	}, log)
	checkFn := checkFunc(chk)

	var patchOpts []patch.Option
	if runDryRun {
		patchOpts = append(patchOpts, patch.WithDryRun())
	}
	if runBackup {
		patchOpts = append(patchOpts, patch.WithBackup())
	}
	patcher := patch.New(registry, log, patchOpts...)

	runnerOpts, err := buildRunnerOpts(cobraCmd)
	if err != nil {
		return err
	}

	sum, err := fixer.New(checkFn, patcher, log, runnerOpts...).Run(ctx)
	if err != nil {
		return err
	}

	if err := persistBackupManifest(patcher, log); err != nil {
		return err
	}

	format := report.FormatText
	if runJSON {
		format = report.FormatJSON
	}
	top := runTop
	if top == 0 {
		top = cfg.Top
	}
	if err := report.NewReporter(cobraCmd.OutOrStdout(), format, top).Summary(sum); err != nil {
		return err
	}

	if failures := sum.Failures(); len(failures) > 0 {
		err := errors.Newf("%d file(s) failed to patch", len(failures))
		return errors.NewExitError(err, errors.ExitSystem)
	}
	return nil
}

// checkFunc adapts the checker into the orchestrator's contract.
func checkFunc(chk *checker.Checker) fixer.CheckFunc {
	return func(ctx context.Context) (*tsdiag.Set, error) {
		out, err := chk.Run(ctx)
		if err != nil {
			return nil, errors.NewSystemError(err,
				"Check that "+chk.CommandLine()+" runs in this directory")
		}
		return tsdiag.Parse(out), nil
	}
}

func buildRunnerOpts(cobraCmd *cobra.Command) ([]fixer.Option, error) {
	var opts []fixer.Option

	if runStagedOnly || runChangedOnly {
		filter, err := gitFilter(cobraCmd)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fixer.WithFilter(filter))
	}
	if runPick {
		opts = append(opts, fixer.WithFilter(pickFilter()))
	}
	if runInteractive {
		opts = append(opts, fixer.WithFilter(confirmFilter(cobraCmd)))
	}
	if runUntilClean {
		opts = append(opts, fixer.WithUntilClean(runMaxPasses))
	}
	if runDryRun {
		opts = append(opts, fixer.WithoutRecheck())
	}
	return opts, nil
}

// gitFilter keeps only flagged files that git reports as staged or
// changed. Paths are compared both raw and absolute, since the checker
// and git may report from different roots.
func gitFilter(cobraCmd *cobra.Command) (fixer.FilterFunc, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.NewSystemError(err, "cannot determine working directory")
	}
	if !git.InRepository(cwd) {
		return nil, errors.NewUserError(nil, "--staged-only/--changed-only need a git repository")
	}

	var listed []string
	if runStagedOnly {
		listed, err = git.StagedFiles(cobraCmd.Context(), cwd)
	} else {
		listed, err = git.ChangedFiles(cobraCmd.Context(), cwd)
	}
	if err != nil {
		return nil, errors.NewSystemError(err, "git diff failed")
	}

	allowed := make(map[string]bool, len(listed))
	for _, f := range listed {
		allowed[f] = true
		if abs, err := filepath.Abs(f); err == nil {
			allowed[abs] = true
		}
	}

	return func(files []string) []string {
		var kept []string
		for _, f := range files {
			abs, _ := filepath.Abs(f)
			if allowed[f] || allowed[abs] {
				kept = append(kept, f)
			}
		}
		return kept
	}, nil
}

// pickFilter presents the flagged files in a fuzzy multi-select.
func pickFilter() fixer.FilterFunc {
	return func(files []string) []string {
		if len(files) == 0 {
			return nil
		}
		idxs, err := fuzzyfinder.FindMulti(files, func(i int) string {
			return files[i]
		})
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			// Fall back to the full set, e.g. when no TTY is attached.
			return files
		}

		kept := make([]string, 0, len(idxs))
		for _, i := range idxs {
			kept = append(kept, files[i])
		}
		return kept
	}
}

// confirmFilter asks per file before patching.
func confirmFilter(cobraCmd *cobra.Command) fixer.FilterFunc {
	confirmer := prompt.NewConfirmerWithIO(cobraCmd.InOrStdin(), cobraCmd.OutOrStdout())
	return func(files []string) []string {
		var kept []string
		for _, f := range files {
			ok, err := confirmer.Confirm("Patch " + f + "?")
			if err != nil {
				// Ctrl+D skips the rest of the batch.
				return kept
			}
			if ok {
				kept = append(kept, f)
			}
		}
		return kept
	}
}

// persistBackupManifest records the run's .bak copies under the user's
// data directory so they can be found later.
func persistBackupManifest(patcher *patch.Patcher, log *slog.Logger) error {
	m := patcher.BackupManifest()
	if m.Empty() {
		return nil
	}

	dir := paths.BackupDir()
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "cannot create backup directory")
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%s.yaml", time.Now().Format("20060102T150405")))
	if err := m.Write(path); err != nil {
		return errors.NewSystemError(err, "cannot write backup manifest")
	}
	log.Info("backup manifest written", "path", path)
	return nil
}
