package tsdiag

import "sort"

// FileCount pairs a file path with its diagnostic count.
type FileCount struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// Ranked returns all files ordered by descending diagnostic count.
// Ties keep first-seen order (stable sort), so the ranking is
// deterministic for a given checker run.
func (s *Set) Ranked() []FileCount {
	ranked := make([]FileCount, 0, len(s.order))
	for _, f := range s.order {
		ranked = append(ranked, FileCount{File: f, Count: len(s.byFile[f])})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	return ranked
}

// Top returns the n most diagnostic-dense files, or all files if fewer
// than n have diagnostics.
func (s *Set) Top(n int) []FileCount {
	ranked := s.Ranked()
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
