// Package baseline persists and loads reports used as the "before" side
// of a diff: a row-per-file CSV interchange format and a local SQLite
// history of past runs.
package baseline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"unsafemeter/internal/stats"
)

// ErrHeaderMismatch is returned when a baseline's header row does not
// carry exactly the expected field set. Callers decide whether a missing
// baseline is fatal or just means "skip the diff".
var ErrHeaderMismatch = errors.New("baseline header set does not match")

// Headers returns the CSV field names of the persisted format.
func Headers() []string {
	return []string{
		"filename",
		"static_mut_items",
		"total_fns",
		"total_lines",
		"total_statements",
		"unsafe_fns",
		"unsafe_statements",
		"unwraps",
	}
}

// Parse reads a persisted baseline. The header is validated as a set, so
// column order does not matter. Rows whose numeric fields fail to parse
// are skipped; the rest still load. The report total is recomputed from
// the loaded rows.
func Parse(r io.Reader) (*stats.Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading baseline header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	perFile := make(map[string]stats.CodeStats)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row is a row-level problem, not a document one.
			continue
		}
		if len(record) != len(index) {
			continue
		}
		name, cs, ok := parseRow(record, index)
		if !ok {
			continue
		}
		perFile[name] = cs
	}

	return stats.NewReport(perFile), nil
}

func headerIndex(header []string) (map[string]int, error) {
	want := Headers()
	if len(header) != len(want) {
		return nil, ErrHeaderMismatch
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range want {
		if _, ok := index[name]; !ok {
			return nil, ErrHeaderMismatch
		}
	}
	if len(index) != len(want) {
		return nil, ErrHeaderMismatch
	}
	return index, nil
}

func parseRow(record []string, index map[string]int) (string, stats.CodeStats, bool) {
	name := record[index["filename"]]
	if name == "" {
		return "", stats.CodeStats{}, false
	}

	var cs stats.CodeStats
	fields := map[string]*int{
		"static_mut_items":  &cs.StaticMutItems,
		"total_fns":         &cs.TotalFns,
		"total_lines":       &cs.TotalLines,
		"total_statements":  &cs.TotalStatements,
		"unsafe_fns":        &cs.UnsafeFns,
		"unsafe_statements": &cs.UnsafeStatements,
		"unwraps":           &cs.Unwraps,
	}
	for field, dst := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(record[index[field]]))
		if err != nil {
			return "", stats.CodeStats{}, false
		}
		*dst = v
	}
	return name, cs, true
}

// Write serializes a report in the persisted format, rows in
// lexicographic file order.
func Write(w io.Writer, report *stats.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Headers()); err != nil {
		return err
	}
	for _, name := range report.SortedFiles() {
		cs := report.Files[name]
		row := []string{
			name,
			strconv.Itoa(cs.StaticMutItems),
			strconv.Itoa(cs.TotalFns),
			strconv.Itoa(cs.TotalLines),
			strconv.Itoa(cs.TotalStatements),
			strconv.Itoa(cs.UnsafeFns),
			strconv.Itoa(cs.UnsafeStatements),
			strconv.Itoa(cs.Unwraps),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadFile loads a baseline CSV from disk. Files ending in .zst are
// decompressed transparently.
func LoadFile(path string) (*stats.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening baseline: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening compressed baseline: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	return Parse(r)
}

// SaveFile writes a baseline CSV to disk, compressing when the path ends
// in .zst.
func SaveFile(path string, report *stats.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating baseline: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("creating compressed baseline: %w", err)
		}
		if err := Write(enc, report); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	}

	return Write(f, report)
}
