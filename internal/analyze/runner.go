package analyze

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"unsafemeter/internal/logging"
	"unsafemeter/internal/stats"
	"unsafemeter/internal/walker"
)

// Runner fans per-file analysis out over a worker pool and merges the
// results into a Report. Files are independent, so workers share nothing;
// each worker owns its own parser and the merge happens on the receiving
// side only.
type Runner struct {
	logger  *logging.Logger
	workers int
}

// NewRunner creates a runner with one worker per CPU.
func NewRunner(logger *logging.Logger) *Runner {
	return &Runner{logger: logger, workers: runtime.NumCPU()}
}

type fileResult struct {
	path  string
	stats stats.CodeStats
}

// GenerateReport analyzes every Rust file under root and builds the crate
// report. Unparseable files are logged at debug level and excluded from
// both the per-file entries and the total.
func (r *Runner) GenerateReport(ctx context.Context, root string, excludes []string) (*stats.Report, error) {
	files, err := walker.RustFiles(root, excludes)
	if err != nil {
		return nil, err
	}

	paths := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analyzer := NewAnalyzer()
			for rel := range paths {
				cs, ok := analyzer.AnalyzeFile(ctx, filepath.Join(root, rel))
				if !ok {
					r.logger.Debug("skipping unparseable file", map[string]interface{}{
						"file": rel,
					})
					continue
				}
				results <- fileResult{path: rel, stats: cs}
			}
		}()
	}

	go func() {
		defer close(paths)
		for _, rel := range files {
			select {
			case paths <- rel:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	perFile := make(map[string]stats.CodeStats, len(files))
	for res := range results {
		perFile[res.path] = res.stats
	}

	r.logger.Debug("analysis complete", map[string]interface{}{
		"filesFound":    len(files),
		"filesAnalyzed": len(perFile),
	})

	return stats.NewReport(perFile), nil
}
