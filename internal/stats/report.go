package stats

import "sort"

// Report maps file paths (relative to the crate root) to their collected
// counters, plus the field-wise total over all files. A Report is built
// once and not mutated afterwards.
type Report struct {
	Files map[string]CodeStats `json:"files" yaml:"files"`
	Total CodeStats            `json:"total" yaml:"total"`
}

// NewReport builds a Report from per-file stats. The total is a
// commutative field-wise sum, so input order does not matter.
func NewReport(files map[string]CodeStats) *Report {
	r := &Report{Files: make(map[string]CodeStats, len(files))}
	for name, s := range files {
		r.Files[name] = s
		r.Total.Add(s)
	}
	return r
}

// SortedFiles returns the file paths in lexicographic order. All
// renderers and the diff engine iterate in this order so output is
// deterministic.
func (r *Report) SortedFiles() []string {
	names := make([]string, 0, len(r.Files))
	for name := range r.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
