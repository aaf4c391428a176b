package candidates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"unsafemeter/internal/logging"
)

func TestFinderFind(t *testing.T) {
	root := t.TempDir()
	write := func(rel, source string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(source), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	write("src/with.rs", `unsafe fn first(a: i32) {}

unsafe fn second() {}

unsafe fn skipped(p: *mut u8) {}
`)
	write("src/without.rs", `fn plain() {}
`)
	write("src/zz.rs", `unsafe fn third(x: u8) {}
`)

	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
	finder := NewFinder(logger, IsSafeCandidate)

	files, err := finder.Find(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	// Files without candidates are omitted, the rest come sorted.
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	if files[0].Filename != "src/with.rs" || files[1].Filename != "src/zz.rs" {
		t.Errorf("files = [%s, %s], want [src/with.rs, src/zz.rs]",
			files[0].Filename, files[1].Filename)
	}
	if len(files[0].Candidates) != 2 {
		t.Errorf("src/with.rs has %d candidates, want 2", len(files[0].Candidates))
	}
	if files[0].Candidates[0].FnName != "first" {
		t.Errorf("first candidate = %s, want first", files[0].Candidates[0].FnName)
	}
}
