package render

import (
	"bytes"
	"strings"
	"testing"

	"unsafemeter/internal/stats"
)

func testReport() *stats.Report {
	return stats.NewReport(map[string]stats.CodeStats{
		"src/lib.rs": {
			StaticMutItems: 1, TotalFns: 4, TotalLines: 100,
			TotalStatements: 40, UnsafeFns: 2, UnsafeStatements: 6, Unwraps: 3,
		},
		"src/clean.rs": {
			TotalFns: 2, TotalLines: 50, TotalStatements: 20,
		},
	})
}

func TestMarkdownRender(t *testing.T) {
	var buf bytes.Buffer
	md := Markdown{Style: Style{Color: false}, Crate: "mycrate"}
	if err := md.Render(&buf, testReport(), nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Code Report",
		"- Crate: mycrate",
		"- Total lines: 150",
		"- Total unsafe functions: 33.33% (2 / 6)",
		"- Total statements in unsafe blocks: 6",
		"- Total static mut items: 1",
		"- Total unwrap calls: 3",
		"src/clean.rs",
		"src/lib.rs",
		"2/4",
		"6/40",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Files appear in lexicographic order.
	if strings.Index(out, "src/clean.rs") > strings.Index(out, "src/lib.rs") {
		t.Error("files out of order")
	}
}

func TestMarkdownRenderDiffNoChanges(t *testing.T) {
	r := testReport()
	diff := stats.Diff(r, r)

	var buf bytes.Buffer
	md := Markdown{Style: Style{Color: false}}
	if err := md.Render(&buf, r, diff); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No changes") {
		t.Errorf("output missing no-changes marker:\n%s", out)
	}
	if !strings.Contains(out, "unsafe fn  : 2 (no change)") {
		t.Errorf("output missing summary delta:\n%s", out)
	}
}

func TestMarkdownRenderDiffSections(t *testing.T) {
	baseline := stats.NewReport(map[string]stats.CodeStats{
		"src/lib.rs": {TotalFns: 4, UnsafeFns: 1},
		"src/old.rs": {TotalFns: 2, UnsafeFns: 1, UnsafeStatements: 2},
	})
	current := stats.NewReport(map[string]stats.CodeStats{
		"src/lib.rs": {TotalFns: 4, UnsafeFns: 2},
		"src/new.rs": {TotalFns: 1, UnsafeFns: 1, Unwraps: 2},
	})
	diff := stats.Diff(current, baseline)

	var buf bytes.Buffer
	md := Markdown{Style: Style{Color: false}}
	if err := md.Render(&buf, current, diff); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Summary",
		"src/lib.rs",
		"unsafe fn   : 1 -> 2 (+1)",
		"src/new.rs [NEW FILE]",
		"src/old.rs [REMOVED]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Changed files come before added, added before removed.
	changed := strings.Index(out, "unsafe fn   : 1 -> 2 (+1)")
	added := strings.Index(out, "[NEW FILE]")
	removed := strings.Index(out, "[REMOVED]")
	if !(changed < added && added < removed) {
		t.Errorf("diff sections out of order: changed=%d added=%d removed=%d",
			changed, added, removed)
	}
}

func TestTableAlignment(t *testing.T) {
	table := NewTable("file", "count")
	table.AddRow(PlainCell("a.rs"), PlainCell("1"))
	table.AddRow(PlainCell("long/name.rs"), PlainCell("10"))

	var buf bytes.Buffer
	if err := table.WriteMarkdown(&buf, Style{Color: false}); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	// All rows share one width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("line %d width %d != header width %d", i, len(lines[i]), len(lines[0]))
		}
	}
	if !strings.HasPrefix(lines[1], "| :---") {
		t.Errorf("separator = %q, want left-aligned first column", lines[1])
	}
	if !strings.Contains(lines[1], "---:") {
		t.Errorf("separator = %q, want right-aligned columns", lines[1])
	}
}
