package patch

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders the pending change as a unified diff for dry-run
// output.
func unifiedDiff(path, original, patched string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(patched),
		FromFile: path,
		ToFile:   path + " (patched)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
