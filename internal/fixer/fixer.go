// Package fixer orchestrates the check-patch-recheck cycle: run the
// type checker, patch every file it flagged, then run it again to
// measure convergence.
package fixer

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/tsfix/internal/patch"
	"github.com/thoreinstein/tsfix/internal/tsdiag"
)

// DefaultMaxPasses bounds the until-clean loop. Rules are idempotent,
// so a pass that fixes nothing ends the loop well before this; the cap
// only guards against a checker whose output oscillates.
const DefaultMaxPasses = 5

// CheckFunc produces the current diagnostic set. Swappable in tests.
type CheckFunc func(ctx context.Context) (*tsdiag.Set, error)

// FilterFunc narrows the flagged file list before patching, e.g. to
// git-staged files or an interactive selection.
type FilterFunc func(files []string) []string

// Summary is the outcome of a full run.
type Summary struct {
	ErrorsBefore  int                `json:"errors_before"`
	ErrorsAfter   int                `json:"errors_after"`
	Passes        int                `json:"passes"`
	FilesModified int                `json:"files_modified"`
	TotalFixes    int                `json:"total_fixes"`
	Ranked        []tsdiag.FileCount `json:"ranked,omitempty"`
	Results       []patch.Result     `json:"results,omitempty"`
}

// Net returns the number of diagnostics eliminated. Negative when the
// run made things worse.
func (s *Summary) Net() int { return s.ErrorsBefore - s.ErrorsAfter }

// Failures returns the per-file results that hit a read or write error.
func (s *Summary) Failures() []patch.Result {
	var out []patch.Result
	for _, r := range s.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Runner drives the cycle.
type Runner struct {
	check      CheckFunc
	patcher    *patch.Patcher
	log        *slog.Logger
	filter     FilterFunc
	untilClean bool
	maxPasses  int
	noRecheck  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithFilter restricts patching to the files fn keeps.
func WithFilter(fn FilterFunc) Option {
	return func(r *Runner) { r.filter = fn }
}

// WithUntilClean repeats the patch/recheck cycle until a pass stops
// making progress, up to maxPasses (DefaultMaxPasses when <= 0).
func WithUntilClean(maxPasses int) Option {
	return func(r *Runner) {
		r.untilClean = true
		if maxPasses <= 0 {
			maxPasses = DefaultMaxPasses
		}
		r.maxPasses = maxPasses
	}
}

// WithoutRecheck skips the closing checker run. Used with dry-run,
// where nothing was written and the after-count would equal the
// before-count anyway.
func WithoutRecheck() Option {
	return func(r *Runner) { r.noRecheck = true }
}

// New creates a Runner.
func New(check CheckFunc, patcher *patch.Patcher, log *slog.Logger, opts ...Option) *Runner {
	if log == nil {
		log = slog.Default()
	}
	r := &Runner{
		check:     check,
		patcher:   patcher,
		log:       log,
		maxPasses: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the cycle and returns the convergence summary. A checker
// invocation failure aborts the run; per-file patch failures do not.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	set, err := r.check(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ErrorsBefore: set.Total(),
		ErrorsAfter:  set.Total(),
		Ranked:       set.Ranked(),
	}
	if set.Empty() {
		r.log.Info("no diagnostics, nothing to do")
		return summary, nil
	}

	for pass := 0; pass < r.maxPasses; pass++ {
		files := rankedFiles(set)
		if r.filter != nil {
			files = r.filter(files)
		}
		if len(files) == 0 {
			break
		}

		r.log.Debug("patch pass", "pass", pass+1, "files", len(files))
		results := r.patcher.ApplyAll(files)
		summary.Passes++

		passFixes := 0
		for _, res := range results {
			summary.Results = append(summary.Results, res)
			if res.Changed {
				summary.FilesModified++
				summary.TotalFixes += res.Fixes
				passFixes += res.Fixes
			}
		}

		if r.noRecheck {
			return summary, nil
		}

		prev := set.Total()
		if set, err = r.check(ctx); err != nil {
			return nil, err
		}
		summary.ErrorsAfter = set.Total()

		if !r.untilClean || set.Empty() || passFixes == 0 || set.Total() >= prev {
			break
		}
	}

	r.log.Info("run complete",
		"before", summary.ErrorsBefore,
		"after", summary.ErrorsAfter,
		"fixes", summary.TotalFixes,
	)
	return summary, nil
}

// rankedFiles lists the flagged files worst-first, so the files with
// the most diagnostics are patched first.
func rankedFiles(set *tsdiag.Set) []string {
	ranked := set.Ranked()
	files := make([]string, len(ranked))
	for i, fc := range ranked {
		files[i] = fc.File
	}
	return files
}
