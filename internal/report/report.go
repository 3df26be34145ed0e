// Package report renders run summaries for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/thoreinstein/tsfix/internal/fixer"
	"github.com/thoreinstein/tsfix/internal/tsdiag"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// DefaultTop is how many files the ranking table shows.
const DefaultTop = 10

// Reporter formats and writes run summaries.
type Reporter struct {
	out    io.Writer
	format Format
	top    int
}

// NewReporter creates a Reporter. A non-positive top falls back to
// DefaultTop.
func NewReporter(out io.Writer, format Format, top int) *Reporter {
	if top <= 0 {
		top = DefaultTop
	}
	return &Reporter{out: out, format: format, top: top}
}

// Summary writes the outcome of a full run.
func (r *Reporter) Summary(sum *fixer.Summary) error {
	if sum == nil {
		return nil
	}
	switch r.format {
	case FormatJSON:
		return r.encodeJSON(sum)
	default:
		return r.summaryText(sum)
	}
}

// Ranking writes the diagnostic ranking only, for check runs that do
// not patch anything.
func (r *Reporter) Ranking(set *tsdiag.Set) error {
	if r.format == FormatJSON {
		return r.encodeJSON(struct {
			Total  int                `json:"total"`
			Ranked []tsdiag.FileCount `json:"ranked"`
		}{set.Total(), set.Ranked()})
	}

	if set.Empty() {
		fmt.Fprintln(r.out, color.GreenString("✓ No type errors"))
		return nil
	}
	fmt.Fprintf(r.out, "%s across %d file(s)\n\n",
		color.RedString("%d error(s)", set.Total()), len(set.Files()))
	r.rankingTable(set.Ranked())
	return nil
}

func (r *Reporter) encodeJSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "encoding JSON report")
}

func (r *Reporter) summaryText(sum *fixer.Summary) error {
	if sum.ErrorsBefore == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ No type errors"))
		return nil
	}

	fmt.Fprintf(r.out, "%s across %d file(s)\n\n",
		color.RedString("%d error(s)", sum.ErrorsBefore), len(sum.Ranked))
	r.rankingTable(sum.Ranked)

	fmt.Fprintln(r.out)
	for _, res := range sum.Results {
		switch {
		case res.Failed():
			fmt.Fprintf(r.out, "  %s %s: %s\n", color.RedString("✗"), res.File, res.Error)
		case res.Skipped:
			fmt.Fprintf(r.out, "  %s %s (missing, skipped)\n", dim("-"), res.File)
		case res.Changed && res.Diff != "":
			fmt.Fprintf(r.out, "  %s %s: %d pending fix(es)\n",
				color.YellowString("~"), res.File, res.Fixes)
			fmt.Fprintln(r.out, res.Diff)
		case res.Changed:
			fmt.Fprintf(r.out, "  %s %s: %d fix(es)\n", color.GreenString("✓"), res.File, res.Fixes)
		default:
			fmt.Fprintf(r.out, "  %s %s (no matching patterns)\n", dim("·"), res.File)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Before: %d  After: %d  ", sum.ErrorsBefore, sum.ErrorsAfter)
	switch net := sum.Net(); {
	case net > 0:
		fmt.Fprintln(r.out, color.GreenString("Fixed: %d", net))
	case net < 0:
		fmt.Fprintln(r.out, color.RedString("Regressed: %d", -net))
	default:
		fmt.Fprintln(r.out, dim("Fixed: 0"))
	}

	if failures := sum.Failures(); len(failures) > 0 {
		fmt.Fprintln(r.out, color.RedString("%d file(s) failed to patch", len(failures)))
	}
	return nil
}

func (r *Reporter) rankingTable(ranked []tsdiag.FileCount) {
	shown := ranked
	if len(shown) > r.top {
		shown = shown[:r.top]
	}
	fmt.Fprintf(r.out, "Top %d files by error count:\n", len(shown))
	for _, fc := range shown {
		fmt.Fprintf(r.out, "  %4d  %s\n", fc.Count, fc.File)
	}
	if rest := len(ranked) - len(shown); rest > 0 {
		fmt.Fprintln(r.out, dim(fmt.Sprintf("  ... and %d more", rest)))
	}
}

func dim(s string) string {
	return color.New(color.FgHiBlack).Sprint(s)
}
