package baseline

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"unsafemeter/internal/stats"
)

func sampleReport() *stats.Report {
	return stats.NewReport(map[string]stats.CodeStats{
		"src/lib.rs": {
			StaticMutItems: 1, TotalFns: 4, TotalLines: 120,
			TotalStatements: 60, UnsafeFns: 2, UnsafeStatements: 7, Unwraps: 3,
		},
		"src/main.rs": {
			TotalFns: 1, TotalLines: 30, TotalStatements: 10,
		},
	})
}

func TestWriteParseRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := sampleReport()
	if len(got.Files) != len(want.Files) {
		t.Fatalf("loaded %d files, want %d", len(got.Files), len(want.Files))
	}
	for name, cs := range want.Files {
		if got.Files[name] != cs {
			t.Errorf("%s = %+v, want %+v", name, got.Files[name], cs)
		}
	}
	if got.Total != want.Total {
		t.Errorf("Total = %+v, want %+v", got.Total, want.Total)
	}
}

func TestParseReorderedHeader(t *testing.T) {
	// Column order differs from the writer's, field set is identical.
	input := strings.Join([]string{
		"unwraps,unsafe_statements,unsafe_fns,total_statements,total_lines,total_fns,static_mut_items,filename",
		"3,7,2,60,120,4,1,src/lib.rs",
	}, "\n")

	report, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := stats.CodeStats{
		StaticMutItems: 1, TotalFns: 4, TotalLines: 120,
		TotalStatements: 60, UnsafeFns: 2, UnsafeStatements: 7, Unwraps: 3,
	}
	if report.Files["src/lib.rs"] != want {
		t.Errorf("src/lib.rs = %+v, want %+v", report.Files["src/lib.rs"], want)
	}
}

func TestParseHeaderMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing column", "filename,total_fns\nsrc/lib.rs,4\n"},
		{"renamed column", "filename,static_mut,total_fns,total_lines,total_statements,unsafe_fns,unsafe_statements,unwraps\n"},
		{"extra column", "filename,static_mut_items,total_fns,total_lines,total_statements,unsafe_fns,unsafe_statements,unwraps,extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrHeaderMismatch) {
				t.Errorf("err = %v, want ErrHeaderMismatch", err)
			}
		})
	}
}

func TestParseSkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"filename,static_mut_items,total_fns,total_lines,total_statements,unsafe_fns,unsafe_statements,unwraps",
		"src/good.rs,0,1,10,5,0,0,0",
		"src/bad.rs,0,not-a-number,10,5,0,0,0",
		"src/short.rs,0,1",
		"src/other.rs,1,2,20,9,1,3,2",
	}, "\n")

	report, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(report.Files) != 2 {
		t.Fatalf("loaded %d files, want 2: %v", len(report.Files), report.SortedFiles())
	}
	if _, ok := report.Files["src/bad.rs"]; ok {
		t.Error("row with unparseable counter must be skipped")
	}
	if _, ok := report.Files["src/short.rs"]; ok {
		t.Error("truncated row must be skipped")
	}
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"baseline.csv", "baseline.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveFile(path, sampleReport()); err != nil {
				t.Fatalf("SaveFile: %v", err)
			}

			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if got.Total != sampleReport().Total {
				t.Errorf("Total = %+v, want %+v", got.Total, sampleReport().Total)
			}
		})
	}
}
