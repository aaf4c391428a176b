package stats

import "sort"

// DiffKind classifies a per-file entry in a DiffReport.
type DiffKind string

const (
	// DiffAdded marks a file present only in the current report.
	DiffAdded DiffKind = "added"
	// DiffRemoved marks a file present only in the baseline.
	DiffRemoved DiffKind = "removed"
	// DiffChanged marks a file whose safety-relevant counters differ.
	DiffChanged DiffKind = "changed"
)

// FileDiff is one classified entry of a diff. For added files only After
// is set, for removed files only Before, for changed files both.
type FileDiff struct {
	Kind   DiffKind  `json:"kind" yaml:"kind"`
	Before CodeStats `json:"before,omitempty" yaml:"before,omitempty"`
	After  CodeStats `json:"after,omitempty" yaml:"after,omitempty"`
}

// DiffReport is the comparison of a current report against a baseline.
// Files present in both sides with identical safety-relevant counters are
// dropped entirely; the totals are always populated, even when Changes is
// empty, and can differ in cosmetic-only fields.
type DiffReport struct {
	BeforeTotal CodeStats           `json:"beforeTotal" yaml:"before_total"`
	AfterTotal  CodeStats           `json:"afterTotal" yaml:"after_total"`
	Changes     map[string]FileDiff `json:"changes" yaml:"changes"`
}

// Diff reconciles the file sets of the current report and a baseline and
// classifies every file as added, removed, or changed.
func Diff(current, baseline *Report) *DiffReport {
	d := &DiffReport{
		BeforeTotal: baseline.Total,
		AfterTotal:  current.Total,
		Changes:     make(map[string]FileDiff),
	}

	seen := make(map[string]bool, len(current.Files)+len(baseline.Files))
	union := make([]string, 0, len(current.Files)+len(baseline.Files))
	for name := range baseline.Files {
		seen[name] = true
		union = append(union, name)
	}
	for name := range current.Files {
		if !seen[name] {
			union = append(union, name)
		}
	}

	for _, name := range union {
		before, inBefore := baseline.Files[name]
		after, inAfter := current.Files[name]
		switch {
		case inBefore && inAfter:
			if before.ShouldReportChange(after) {
				d.Changes[name] = FileDiff{Kind: DiffChanged, Before: before, After: after}
			}
		case inAfter:
			d.Changes[name] = FileDiff{Kind: DiffAdded, After: after}
		case inBefore:
			d.Changes[name] = FileDiff{Kind: DiffRemoved, Before: before}
		}
	}

	return d
}

// SortedFiles returns the changed file paths in lexicographic order.
func (d *DiffReport) SortedFiles() []string {
	names := make([]string, 0, len(d.Changes))
	for name := range d.Changes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasChanges reports whether any per-file entry survived classification.
func (d *DiffReport) HasChanges() bool {
	return len(d.Changes) > 0
}
