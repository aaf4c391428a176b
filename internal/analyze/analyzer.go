package analyze

import (
	"context"
	"os"

	"unsafemeter/internal/rustparse"
	"unsafemeter/internal/stats"
)

// Analyzer computes safety metrics for Rust source files.
type Analyzer struct {
	parser *rustparse.Parser
}

// NewAnalyzer creates a new metrics analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{parser: rustparse.NewParser()}
}

// AnalyzeSource parses source text and collects its counters. A file the
// parser rejects yields (zero, false); the caller drops it from the report.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source []byte) (stats.CodeStats, bool) {
	root, err := a.parser.Parse(ctx, source)
	if err != nil {
		return stats.CodeStats{}, false
	}
	return Collect(root, source), true
}

// AnalyzeFile reads and analyzes one file. Unreadable files are treated
// like unparseable ones: skipped, not fatal.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (stats.CodeStats, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		return stats.CodeStats{}, false
	}
	return a.AnalyzeSource(ctx, source)
}
