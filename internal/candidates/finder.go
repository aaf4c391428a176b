package candidates

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"unsafemeter/internal/logging"
	"unsafemeter/internal/rustparse"
	"unsafemeter/internal/walker"
)

// Detector is a predicate over one function declaration.
type Detector func(fn *sitter.Node, source []byte) bool

// Finder runs a detector over every function of every Rust file in a
// crate. Files are processed concurrently; each worker owns its parser.
type Finder struct {
	logger  *logging.Logger
	detect  Detector
	workers int
}

// NewFinder creates a finder for the given detector.
func NewFinder(logger *logging.Logger, detect Detector) *Finder {
	return &Finder{logger: logger, detect: detect, workers: runtime.NumCPU()}
}

// FindInSource returns the candidates of a single parsed file.
func FindInSource(root *sitter.Node, source []byte, detect Detector) []Candidate {
	var found []Candidate
	for _, fn := range rustparse.FindAll(root, rustparse.KindFunctionItem) {
		if detect(fn, source) {
			found = append(found, Candidate{
				FnName: rustparse.FunctionName(fn, source),
				Line:   rustparse.Line(fn),
			})
		}
	}
	return found
}

// Find analyzes every Rust file under crateRoot and returns, in
// lexicographic filename order, the files that have at least one
// candidate. Unreadable or unparseable files are skipped.
func (f *Finder) Find(ctx context.Context, crateRoot string, excludes []string) ([]FileStats, error) {
	files, err := walker.RustFiles(crateRoot, excludes)
	if err != nil {
		return nil, err
	}

	paths := make(chan string)
	results := make(chan FileStats)

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := rustparse.NewParser()
			for rel := range paths {
				source, err := os.ReadFile(filepath.Join(crateRoot, rel))
				if err != nil {
					continue
				}
				root, err := parser.Parse(ctx, source)
				if err != nil {
					f.logger.Debug("skipping unparseable file", map[string]interface{}{
						"file": rel,
					})
					continue
				}
				if found := FindInSource(root, source, f.detect); len(found) > 0 {
					results <- FileStats{Filename: rel, Candidates: found}
				}
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

	var all []FileStats
	for fs := range results {
		all = append(all, fs)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Filename < all[j].Filename })

	return all, nil
}
