package rules

import "regexp"

// FilterArg appends an `as any` escape to bare-identifier values passed
// to query filter methods, the usual source of "Argument of type 'any'
// is not assignable to parameter of type 'never'" diagnostics:
//
//	.eq('user_id', userId)  -> .eq('user_id', userId as any)
//	.in('status', statuses) -> .in('status', statuses as any)
//
// Only a quoted column name followed by a bare identifier is rewritten.
// A value that already carries an assertion no longer matches the
// identifier-then-close-paren shape, so the rule is structurally
// idempotent.
type FilterArg struct {
	re *regexp.Regexp
}

// NewFilterArg creates the rule.
func NewFilterArg() *FilterArg {
	return &FilterArg{
		re: regexp.MustCompile(`\.(eq|in)\(\s*(['"][A-Za-z0-9_]+['"])\s*,\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)`),
	}
}

// Name implements Rule.
func (r *FilterArg) Name() string { return "filter-argument" }

// Description implements Rule.
func (r *FilterArg) Description() string {
	return "add `as any` to bare identifier values in .eq/.in filters"
}

// Apply implements Rule. The fix count is per rewritten site, one for
// each filter call, not per pattern.
func (r *FilterArg) Apply(content string) (string, int) {
	fixes := 0
	out := r.re.ReplaceAllStringFunc(content, func(m string) string {
		sub := r.re.FindStringSubmatch(m)
		fixes++
		return "." + sub[1] + "(" + sub[2] + ", " + sub[3] + " as any)"
	})
	return out, fixes
}
