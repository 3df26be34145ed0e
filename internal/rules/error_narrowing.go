package rules

import (
	"regexp"
	"strings"
)

// narrowedName is the identifier the narrowing declaration binds. It
// doubles as the prior-application marker: a catch block that already
// declares it (or catches into it) is never rewritten.
const narrowedName = "err"

var (
	catchHeadRe = regexp.MustCompile(`catch\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*\{`)
	blockIndent = regexp.MustCompile(`\n([ \t]+)`)
)

// ErrorNarrowing rewrites catch blocks that forward the caught value
// straight into a logging call without narrowing its type first:
//
//	catch (e) {
//	  logger.error('save failed', e);
//	}
//
// becomes:
//
//	catch (e) {
//	  const err = e instanceof Error ? e : new Error(String(e));
//	  logger.error('save failed', err);
//	}
//
// The caught value is used as-is when it is already an Error, otherwise
// wrapped in a new Error carrying its string representation. Catch
// blocks are located with a small brace scanner rather than a single
// regex so that nested blocks resolve correctly; string literals
// containing braces can still confuse the scanner, which is an accepted
// limit of text-level matching.
type ErrorNarrowing struct{}

// NewErrorNarrowing creates the rule.
func NewErrorNarrowing() *ErrorNarrowing { return &ErrorNarrowing{} }

// Name implements Rule.
func (r *ErrorNarrowing) Name() string { return "error-narrowing" }

// Description implements Rule.
func (r *ErrorNarrowing) Description() string {
	return "narrow caught values before forwarding them to logging calls"
}

// Apply implements Rule. The fix count is one per rewritten catch block.
func (r *ErrorNarrowing) Apply(content string) (string, int) {
	fixes := 0
	searchFrom := 0
	for {
		loc := catchHeadRe.FindStringSubmatchIndex(content[searchFrom:])
		if loc == nil {
			break
		}
		headEnd := searchFrom + loc[1]
		name := content[searchFrom+loc[2] : searchFrom+loc[3]]

		closeIdx := matchBrace(content, headEnd-1)
		if closeIdx < 0 || name == narrowedName {
			searchFrom = headEnd
			continue
		}

		block := content[headEnd:closeIdx]
		newBlock, ok := narrowBlock(block, name)
		if !ok {
			// Keep scanning: the block may contain nested catches.
			searchFrom = headEnd
			continue
		}

		fixes++
		content = content[:headEnd] + newBlock + content[closeIdx:]
		// Continue from inside the rewritten block so nested catch
		// blocks are still visited in this pass.
		searchFrom = headEnd
	}
	return content, fixes
}

// matchBrace returns the index of the '}' closing the '{' at openIdx,
// or -1 if the braces never balance.
func matchBrace(s string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// forwardCallRe matches a logging call whose final argument is exactly
// the caught identifier: log(e), logger.error('msg', e),
// console.error(e) and the like.
func forwardCallRe(name string) *regexp.Regexp {
	return regexp.MustCompile(
		`\b((?:[A-Za-z_$][A-Za-z0-9_$]*\.)?(?:error|warn|log))\(\s*(?:([^()]*?)\s*,\s*)?` +
			regexp.QuoteMeta(name) + `\s*\)`)
}

// narrowBlock inserts the narrowing declaration at the top of the block
// and re-points forwarding calls at the narrowed name. Reports ok=false
// when the block needs no rewrite (no forwarding call, or the narrowing
// declaration is already present).
func narrowBlock(block, name string) (string, bool) {
	marker := "const " + narrowedName + " = " + name + " instanceof Error"
	if strings.Contains(block, marker) {
		return block, false
	}

	forward := forwardCallRe(name)
	if !forward.MatchString(block) {
		return block, false
	}

	decl := "const " + narrowedName + " = " + name + " instanceof Error ? " + name +
		" : new Error(String(" + name + "));"

	rewritten := forward.ReplaceAllStringFunc(block, func(m string) string {
		sub := forward.FindStringSubmatch(m)
		callee, args := sub[1], sub[2]
		if args == "" {
			return callee + "(" + narrowedName + ")"
		}
		return callee + "(" + args + ", " + narrowedName + ")"
	})

	// Match the block's own indentation; single-line blocks get the
	// declaration inline.
	if m := blockIndent.FindStringSubmatch(block); m != nil {
		return "\n" + m[1] + decl + rewritten, true
	}
	return " " + decl + rewritten, true
}
