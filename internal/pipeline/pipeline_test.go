package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"jobmarket-engine/internal/clean"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/store"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testRunner(t *testing.T, withDB bool) *Runner {
	t.Helper()
	r := &Runner{
		TF:      clean.NewTransformer(clean.DefaultVocabulary()),
		Hub:     events.NewHub(),
		Workers: 2,
	}
	if withDB {
		db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := store.Migrate(db.Pool); err != nil {
			t.Fatal(err)
		}
		r.DB = db.Pool
	}
	return r
}

const goodCSV = "title,company,location,description\n" +
	"Senior Software Engineer,Acme,\"Seattle, WA\",Python and AWS experience\n" +
	"Data Analyst,Beta,Remote,SQL reporting work from home\n"

func TestProcessDirectory(t *testing.T) {
	r := testRunner(t, true)
	dir := t.TempDir()
	writeCSV(t, dir, "batch_001.csv", goodCSV)
	writeCSV(t, dir, "batch_002.csv",
		"title,company,location,description\nEngineer,Gamma,NYC,Go services\n")
	writeCSV(t, dir, "notes.txt", "not a batch") // ignored, not *.csv

	res, err := r.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
	if len(res.Files) != 2 || res.Failed != 0 {
		t.Fatalf("result = %+v", res)
	}
	if res.Rows != 3 || res.Inserted != 3 {
		t.Errorf("rows=%d inserted=%d, want 3/3", res.Rows, res.Inserted)
	}

	stored, err := store.ListPostings(context.Background(), r.DB, store.ListPostingsOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 {
		t.Errorf("stored %d postings, want 3", len(stored))
	}
}

func TestProcessDirectoryBadFileIsolated(t *testing.T) {
	r := testRunner(t, true)
	dir := t.TempDir()
	writeCSV(t, dir, "bad.csv", "company,location\nAcme,NYC\n") // missing required columns
	writeCSV(t, dir, "good.csv", goodCSV)

	res, err := r.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("a bad file must not abort the run: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
	if res.Inserted != 2 {
		t.Errorf("Inserted = %d, the good file should still land", res.Inserted)
	}
}

func TestProcessDirectoryMissingDir(t *testing.T) {
	r := testRunner(t, false)

	if _, err := r.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("want structural error for missing directory")
	}
}

func TestProcessDirectoryRerunDedupes(t *testing.T) {
	r := testRunner(t, true)
	dir := t.TempDir()
	writeCSV(t, dir, "batch.csv", goodCSV)

	if _, err := r.ProcessDirectory(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
	res, err := r.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 0 || res.Dupes != 2 {
		t.Errorf("rerun inserted=%d dupes=%d, want 0/2", res.Inserted, res.Dupes)
	}
}

func TestProcessFileNoDB(t *testing.T) {
	r := testRunner(t, false)
	dir := t.TempDir()
	writeCSV(t, dir, "batch.csv", goodCSV)

	fr, err := r.ProcessFile(context.Background(), filepath.Join(dir, "batch.csv"))
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if fr.Rows != 2 {
		t.Errorf("Rows = %d, want 2", fr.Rows)
	}
	if fr.Result.Inserted != 0 {
		t.Errorf("no DB attached, Inserted = %d", fr.Result.Inserted)
	}
}
