package baseline

import (
	"errors"
	"testing"

	"unsafemeter/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	report := sampleReport()
	id, err := store.SaveRun("mycrate", report)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun returned empty id")
	}

	loaded, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(loaded.Files) != len(report.Files) {
		t.Fatalf("loaded %d files, want %d", len(loaded.Files), len(report.Files))
	}
	for name, cs := range report.Files {
		if loaded.Files[name] != cs {
			t.Errorf("%s = %+v, want %+v", name, loaded.Files[name], cs)
		}
	}
	if loaded.Total != report.Total {
		t.Errorf("Total = %+v, want %+v", loaded.Total, report.Total)
	}
}

func TestStoreListRuns(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("fresh store lists %d runs", len(runs))
	}

	if _, err := store.SaveRun("mycrate", sampleReport()); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err = store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
	if runs[0].Crate != "mycrate" {
		t.Errorf("Crate = %s, want mycrate", runs[0].Crate)
	}
	if runs[0].FileCount != len(sampleReport().Files) {
		t.Errorf("FileCount = %d, want %d", runs[0].FileCount, len(sampleReport().Files))
	}
}

func TestStoreMissingRun(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.LoadRun("no-such-run"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadRun err = %v, want ErrRunNotFound", err)
	}
	if _, err := store.LatestRunID(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LatestRunID err = %v, want ErrRunNotFound", err)
	}
}

func TestStoreLatestRunID(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	id, err := store.SaveRun("mycrate", sampleReport())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	latest, err := store.LatestRunID()
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if latest != id {
		t.Errorf("LatestRunID = %s, want %s", latest, id)
	}
}
