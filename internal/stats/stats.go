// Package stats holds the per-file safety counters, the whole-project
// report, and the diff engine that compares two reports.
package stats

// CodeStats is the set of safety counters collected for one file, or the
// field-wise sum over many files. Values are conceptually non-negative;
// signed storage keeps delta arithmetic simple.
type CodeStats struct {
	StaticMutItems   int `json:"staticMutItems" yaml:"static_mut_items"`
	TotalFns         int `json:"totalFns" yaml:"total_fns"`
	TotalLines       int `json:"totalLines" yaml:"total_lines"`
	TotalStatements  int `json:"totalStatements" yaml:"total_statements"`
	UnsafeFns        int `json:"unsafeFns" yaml:"unsafe_fns"`
	UnsafeStatements int `json:"unsafeStatements" yaml:"unsafe_statements"`
	Unwraps          int `json:"unwraps" yaml:"unwraps"`
}

// Add accumulates rhs into s field by field. Each field is added exactly
// once, so summing a set of CodeStats yields the same total in any order.
func (s *CodeStats) Add(rhs CodeStats) {
	s.StaticMutItems += rhs.StaticMutItems
	s.TotalFns += rhs.TotalFns
	s.TotalLines += rhs.TotalLines
	s.TotalStatements += rhs.TotalStatements
	s.UnsafeFns += rhs.UnsafeFns
	s.UnsafeStatements += rhs.UnsafeStatements
	s.Unwraps += rhs.Unwraps
}

// Sum returns the field-wise sum of a collection of CodeStats.
func Sum(all []CodeStats) CodeStats {
	var total CodeStats
	for _, s := range all {
		total.Add(s)
	}
	return total
}

// IsPerfect reports whether the file has no safety findings at all.
func (s CodeStats) IsPerfect() bool {
	return s.UnsafeFns == 0 &&
		s.UnsafeStatements == 0 &&
		s.StaticMutItems == 0 &&
		s.Unwraps == 0
}

// ShouldReportChange compares only the safety-relevant counters.
// TotalFns, TotalStatements and TotalLines are cosmetic for diffing
// purposes and deliberately excluded.
func (s CodeStats) ShouldReportChange(rhs CodeStats) bool {
	return s.UnsafeFns != rhs.UnsafeFns ||
		s.UnsafeStatements != rhs.UnsafeStatements ||
		s.StaticMutItems != rhs.StaticMutItems ||
		s.Unwraps != rhs.Unwraps
}
