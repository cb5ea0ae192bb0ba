// Package pipeline runs the batch side of the engine: read every CSV in the
// raw directory, clean each record, and persist the cleaned batch.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobmarket-engine/internal/clean"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/ingest"
	"jobmarket-engine/internal/store"
)

type Runner struct {
	TF      *clean.Transformer
	DB      *sql.DB // nil disables persistence
	Hub     *events.Hub
	Workers int

	// serializes SaveBatch calls within one run
	persistMu sync.Mutex
}

type FileResult struct {
	File   string
	Rows   int
	Result store.BatchResult
	Err    error
}

type RunResult struct {
	RunID    string
	Files    []FileResult
	Failed   int
	Rows     int
	Inserted int
	Dupes    int
}

// ProcessFile cleans one CSV batch and, when a DB is attached, persists it.
func (r *Runner) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	fr := FileResult{File: filepath.Base(path)}

	raws, err := ingest.ReadFile(path)
	if err != nil {
		fr.Err = err
		return fr, err
	}
	fr.Rows = len(raws)

	cleaned := make([]domain.CleanedPosting, 0, len(raws))
	for _, raw := range raws {
		cleaned = append(cleaned, r.TF.Clean(raw, fr.File))
	}

	if r.DB != nil && len(cleaned) > 0 {
		r.persistMu.Lock()
		res, err := store.SaveBatch(ctx, r.DB, cleaned)
		r.persistMu.Unlock()
		if err != nil {
			fr.Err = err
			return fr, err
		}
		fr.Result = res
	}
	return fr, nil
}

// ProcessDirectory runs the pipeline over every *.csv in dir. A missing or
// unreadable directory is a structural error; a bad file is logged, reported,
// and skipped without aborting the run.
func (r *Runner) ProcessDirectory(ctx context.Context, dir string) (RunResult, error) {
	out := RunResult{RunID: uuid.NewString()}

	info, err := os.Stat(dir)
	if err != nil {
		return out, fmt.Errorf("raw dir: %w", err)
	}
	if !info.IsDir() {
		return out, fmt.Errorf("raw dir: %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return out, err
	}
	sort.Strings(paths)

	r.publish(events.BatchStarted(events.BatchStartedData{
		RunID: out.RunID, Dir: dir, Files: len(paths),
	}))
	log.Printf("[pipeline] run %s: %d file(s) in %s", out.RunID, len(paths), dir)

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			fr, err := r.ProcessFile(gctx, path)
			if err != nil {
				log.Printf("[pipeline] %s: %v", fr.File, err)
				r.publish(events.FileFailed(events.FileFailedData{
					RunID: out.RunID, File: fr.File, Error: err.Error(),
				}))
			} else {
				r.publish(events.FileProcessed(events.FileProcessedData{
					RunID: out.RunID, File: fr.File, Rows: fr.Rows,
					Inserted: fr.Result.Inserted, Dupes: fr.Result.Duplicates,
				}))
			}
			results[i] = fr
			return nil // file failures never abort the batch
		})
	}
	_ = g.Wait()

	out.Files = results
	for _, fr := range results {
		if fr.Err != nil {
			out.Failed++
			continue
		}
		out.Rows += fr.Rows
		out.Inserted += fr.Result.Inserted
		out.Dupes += fr.Result.Duplicates
	}

	r.publish(events.BatchComplete(events.BatchCompleteData{
		RunID: out.RunID, Files: len(paths), Failed: out.Failed,
		Rows: out.Rows, Inserted: out.Inserted, Dupes: out.Dupes,
	}))
	log.Printf("[pipeline] run %s done: %d rows, %d inserted, %d dupes, %d failed file(s)",
		out.RunID, out.Rows, out.Inserted, out.Dupes, out.Failed)

	return out, nil
}

func (r *Runner) publish(evt string) {
	if r.Hub != nil {
		r.Hub.Publish(evt)
	}
}
