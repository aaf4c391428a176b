package candidates

import (
	"context"
	"testing"

	"unsafemeter/internal/rustparse"
)

func findSafeCandidates(t *testing.T, source string) []string {
	t.Helper()
	parser := rustparse.NewParser()
	root, err := parser.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("source failed to parse: %v\n%s", err, source)
	}
	var names []string
	for _, c := range FindInSource(root, []byte(source), IsSafeCandidate) {
		names = append(names, c.FnName)
	}
	return names
}

func TestSafeCandidateDetection(t *testing.T) {
	source := `unsafe fn no_pointers(a: i32, b: u64) -> i32 { a as i32 }

unsafe fn mut_pointer(p: *mut u8) {}

unsafe fn const_pointer(p: *const i32) {}

unsafe fn no_params() {}

fn already_safe(a: i32) {}

unsafe fn reference_param(s: &str) {}
`
	got := findSafeCandidates(t, source)
	want := []string{"no_pointers", "no_params", "reference_param"}

	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCandidateLineNumbers(t *testing.T) {
	source := `fn filler() {}

unsafe fn target(a: i32) {}
`
	parser := rustparse.NewParser()
	root, err := parser.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("source failed to parse: %v", err)
	}

	found := FindInSource(root, []byte(source), IsSafeCandidate)
	if len(found) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(found))
	}
	if found[0].FnName != "target" {
		t.Errorf("FnName = %s, want target", found[0].FnName)
	}
	if found[0].Line != 3 {
		t.Errorf("Line = %d, want 3", found[0].Line)
	}
}
