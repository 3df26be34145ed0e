// Package rules implements the pattern rule library: an ordered set of
// idempotent textual rewrites, each scoped to one recognizable
// type-checker failure signature.
//
// Rules scan whole file contents rather than the flagged line, because a
// single structural pattern (an un-asserted query result binding, say)
// usually explains many diagnostics at once. Matching is regular-
// expression based over raw text: fast, but deliberately trading
// precision for recall. A rule must never corrupt code it cannot
// confidently rewrite; ambiguous sites are left untouched and do not
// count as fixes.
//
// Every rule satisfies two contracts that make the patch loop safe to
// re-run:
//
//   - Idempotence: applying a rule to its own output yields a fix count
//     of zero and unchanged content.
//   - Site-accurate counting: a non-zero fix count corresponds 1:1 with
//     distinct rewritten sites.
package rules

// Rule is a pure content transformation. Apply returns the rewritten
// content and the number of distinct sites fixed; it must return the
// input unchanged with a zero count when no eligible site exists.
type Rule interface {
	// Name returns the unique kebab-case identifier for this rule.
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Apply rewrites content and reports the number of sites fixed.
	Apply(content string) (string, int)
}

// Options configures rule construction from project settings.
type Options struct {
	// Entrypoint is the identifier of the untyped data-access client
	// the untyped-result rule anchors on. Defaults to "supabase".
	Entrypoint string

	// MutationMethods is the method name set for the unsound-argument
	// rule. Defaults to insert, update, upsert.
	MutationMethods []string

	// Disabled lists rule names to exclude from the registry.
	Disabled []string
}

// Registry holds the rule sequence in application order.
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry applying the given rules in order.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// DefaultRegistry builds the standard rule sequence, honoring opts.
// The order is fixed and documented: untyped-result first (it rewrites
// whole binding statements), then the argument rules, then
// error-narrowing (which inserts new statements). Later rules tolerate
// text already mutated by earlier ones.
func DefaultRegistry(opts Options) *Registry {
	all := []Rule{
		NewUntypedResult(opts.Entrypoint),
		NewUnsoundArg(opts.MutationMethods...),
		NewFilterArg(),
		NewErrorNarrowing(),
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[name] = true
	}

	kept := make([]Rule, 0, len(all))
	for _, r := range all {
		if !disabled[r.Name()] {
			kept = append(kept, r)
		}
	}
	return &Registry{rules: kept}
}

// Rules returns the rules in application order.
func (reg *Registry) Rules() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// Names returns the rule names in application order.
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.rules))
	for i, r := range reg.rules {
		names[i] = r.Name()
	}
	return names
}

// Has reports whether a rule with the given name is registered.
func (reg *Registry) Has(name string) bool {
	for _, r := range reg.rules {
		if r.Name() == name {
			return true
		}
	}
	return false
}

// Apply folds the full rule sequence over content and returns the final
// content with the accumulated fix count. Each stage is a pure
// transformation of the previous stage's output.
func (reg *Registry) Apply(content string) (string, int) {
	total := 0
	for _, r := range reg.rules {
		var n int
		content, n = r.Apply(content)
		total += n
	}
	return content, total
}
