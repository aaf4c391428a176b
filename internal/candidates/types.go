// Package candidates implements the heuristic detectors that flag
// functions as plausible refactoring targets. Both detectors are
// advisory: a flagged function may still have reasons not to change.
package candidates

// Candidate identifies one structural match: a function name and the
// line of its declaration.
type Candidate struct {
	FnName string `json:"fnName"`
	Line   int    `json:"line"`
}

// FileStats groups the candidates found in a single file.
type FileStats struct {
	Filename   string      `json:"filename"`
	Candidates []Candidate `json:"candidates"`
}
