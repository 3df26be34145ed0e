package rules

import (
	"regexp"
	"strings"
)

// DefaultEntrypoint is the client identifier the untyped-result rule
// anchors on when no project override is configured.
const DefaultEntrypoint = "supabase"

// UntypedResult rewrites destructured bindings of query results from an
// untyped data-access client so they carry an explicit `as any` escape.
//
// Target shape (one statement, one line):
//
//	const { data } = await supabase.from('users').select('*');
//	const { data: rows, error } = await supabase.from('users').select();
//
// becomes:
//
//	const { data } = await supabase.from('users').select('*') as any;
//
// A statement already carrying an ` as ` assertion anywhere in its span
// is a hard skip: the rule never stacks markers.
type UntypedResult struct {
	entrypoint string
	re         *regexp.Regexp
}

// NewUntypedResult creates the rule anchored on the given client
// identifier. An empty entrypoint falls back to DefaultEntrypoint.
func NewUntypedResult(entrypoint string) *UntypedResult {
	if entrypoint == "" {
		entrypoint = DefaultEntrypoint
	}
	// Anchored per line: a destructuring pattern containing `data`,
	// assigned from an awaited call chain rooted at the entrypoint's
	// .from(...). The chain tail is whatever follows on the same line
	// up to the statement terminator.
	re := regexp.MustCompile(
		`(?m)^([ \t]*)(const\s*\{[^{}\n]*\bdata\b[^{}\n]*\}\s*=\s*await\s+` +
			regexp.QuoteMeta(entrypoint) +
			`\s*\.from\s*\([^()\n]*\)[^;\n]*);`)
	return &UntypedResult{entrypoint: entrypoint, re: re}
}

// Name implements Rule.
func (r *UntypedResult) Name() string { return "untyped-result" }

// Description implements Rule.
func (r *UntypedResult) Description() string {
	return "add `as any` to destructured " + r.entrypoint + " query results"
}

// Apply implements Rule.
func (r *UntypedResult) Apply(content string) (string, int) {
	fixes := 0
	out := r.re.ReplaceAllStringFunc(content, func(m string) string {
		// Existing assertion anywhere in the statement: hard skip.
		if strings.Contains(m, " as ") {
			return m
		}
		sub := r.re.FindStringSubmatch(m)
		fixes++
		return sub[1] + sub[2] + " as any;"
	})
	return out, fixes
}
