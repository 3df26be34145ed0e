// Package tsdiag parses TypeScript compiler diagnostics into structured
// records and aggregates them per source file.
//
// The expected line format is the tsc default:
//
//	<path>(<line>,<col>): error <CODE>: <message>
//
// Lines that do not match (summaries, progress output, blank lines) are
// silently skipped; checker output is never rejected wholesale.
package tsdiag

import (
	"regexp"
	"strconv"
	"strings"
)

// Diagnostic is a single structured checker diagnostic.
type Diagnostic struct {
	// File is the literal path string as emitted by the checker.
	File string `json:"file"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Col is the 1-based column number.
	Col int `json:"col"`

	// Code is the diagnostic code, e.g. "TS2345".
	Code string `json:"code"`

	// Message is the human-readable diagnostic text.
	Message string `json:"message"`
}

// diagnosticRe matches one diagnostic line. The path is matched
// non-greedily so that parenthesized path segments don't swallow the
// position suffix. Codes are an upper-case prefix followed by digits
// (TS2345, JSX1001, ...).
var diagnosticRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): error ([A-Z]+\d+): (.+)$`)

// Set holds parsed diagnostics grouped by file.
//
// The grouping key is the literal path string from the checker with no
// normalization: relative and absolute spellings of the same file form
// distinct groups. File order and per-file record order both follow the
// checker's emission order.
type Set struct {
	order  []string
	byFile map[string][]Diagnostic
}

// Parse extracts all diagnostics from raw checker output.
// It never fails: unrecognized lines contribute nothing.
func Parse(output string) *Set {
	s := &Set{
		byFile: make(map[string][]Diagnostic),
	}

	for _, line := range strings.Split(output, "\n") {
		d, ok := parseLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		if _, seen := s.byFile[d.File]; !seen {
			s.order = append(s.order, d.File)
		}
		s.byFile[d.File] = append(s.byFile[d.File], d)
	}

	return s
}

// parseLine parses a single output line. Reports ok=false for any line
// that is not a well-formed diagnostic.
func parseLine(line string) (Diagnostic, bool) {
	m := diagnosticRe.FindStringSubmatch(line)
	if m == nil {
		return Diagnostic{}, false
	}

	lineNum, err := strconv.Atoi(m[2])
	if err != nil || lineNum < 1 {
		return Diagnostic{}, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil || col < 1 {
		return Diagnostic{}, false
	}

	return Diagnostic{
		File:    m[1],
		Line:    lineNum,
		Col:     col,
		Code:    m[4],
		Message: m[5],
	}, true
}

// Total returns the number of diagnostics across all files.
func (s *Set) Total() int {
	total := 0
	for _, ds := range s.byFile {
		total += len(ds)
	}
	return total
}

// Files returns the file paths in first-seen order.
func (s *Set) Files() []string {
	files := make([]string, len(s.order))
	copy(files, s.order)
	return files
}

// ForFile returns the diagnostics recorded for the given literal path,
// in emission order. Returns nil for unknown paths.
func (s *Set) ForFile(path string) []Diagnostic {
	return s.byFile[path]
}

// Empty reports whether no diagnostics were parsed.
func (s *Set) Empty() bool {
	return len(s.order) == 0
}
