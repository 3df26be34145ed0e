package rules

import (
	"regexp"
	"strings"
)

// DefaultMutationMethods is the method name set the unsound-argument
// rule targets when no project override is configured.
var DefaultMutationMethods = []string{"insert", "update", "upsert"}

// identifierRe matches a bare JavaScript identifier.
var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// UnsoundArg appends an `as any` escape to the single argument of
// mutation-method calls whose payload type the checker infers as
// `never`:
//
//	.insert(row)        -> .insert(row as any)
//	.update({ id: x })  -> .update({ id: x } as any)
//
// Only two argument shapes are rewritten: a bare identifier and a
// single-line object literal. Anything else (call expressions, member
// chains, multi-argument lists, spreads) is left untouched. A missed
// site just leaves one diagnostic unfixed.
type UnsoundArg struct {
	methods []string
	re      *regexp.Regexp
}

// NewUnsoundArg creates the rule for the given method names, defaulting
// to DefaultMutationMethods when none are provided.
func NewUnsoundArg(methods ...string) *UnsoundArg {
	if len(methods) == 0 {
		methods = DefaultMutationMethods
	}
	quoted := make([]string, len(methods))
	for i, m := range methods {
		quoted[i] = regexp.QuoteMeta(m)
	}
	// No nested parentheses in the argument span: call-expression
	// arguments simply never match, which is exactly the conservative
	// behavior we want.
	re := regexp.MustCompile(`\.(` + strings.Join(quoted, "|") + `)\(([^()\n]+)\)`)
	return &UnsoundArg{methods: methods, re: re}
}

// Name implements Rule.
func (r *UnsoundArg) Name() string { return "unsound-argument" }

// Description implements Rule.
func (r *UnsoundArg) Description() string {
	return "add `as any` to " + strings.Join(r.methods, "/") + " payload arguments"
}

// Apply implements Rule.
func (r *UnsoundArg) Apply(content string) (string, int) {
	fixes := 0
	out := r.re.ReplaceAllStringFunc(content, func(m string) string {
		sub := r.re.FindStringSubmatch(m)
		method, arg := sub[1], sub[2]

		if strings.Contains(arg, " as ") {
			return m
		}
		if !eligibleArg(arg) {
			return m
		}

		fixes++
		return "." + method + "(" + strings.TrimSpace(arg) + " as any)"
	})
	return out, fixes
}

// eligibleArg reports whether the argument is one of the two shapes the
// rule rewrites: a bare identifier or a single object literal.
func eligibleArg(arg string) bool {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return false
	}

	// A comma outside brackets means an argument list, not a single
	// payload expression.
	depth := 0
	for _, c := range trimmed {
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				return false
			}
		}
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return true
	}
	return identifierRe.MatchString(trimmed)
}
