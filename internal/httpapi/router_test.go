package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobmarket-engine/internal/clean"
	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/pipeline"
	"jobmarket-engine/internal/store"
)

func testDeps(t *testing.T) Deps {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}

	var cfgVal atomic.Value
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.Pipeline.RawDir = "data/raw"
	cfg.Pipeline.Workers = 1
	cfgVal.Store(cfg)

	var status atomic.Value
	status.Store(PipelineStatus{})

	return Deps{
		DB:             db.Pool,
		Hub:            events.NewHub(),
		CfgVal:         &cfgVal,
		PipelineStatus: &status,
		UserCfgPath:    filepath.Join(t.TempDir(), "config.yml"),
		LoadCfg:        func() (config.Config, error) { return cfg, nil },
		RunPipeline: func(ctx context.Context) (pipeline.RunResult, error) {
			return pipeline.RunResult{RunID: "test-run", Rows: 2, Inserted: 2}, nil
		},
	}
}

func seedPosting(t *testing.T, d Deps) {
	t.Helper()
	tf := clean.NewTransformer(clean.DefaultVocabulary())
	raw := domain.RawPosting{
		Title:       "Senior Software Engineer",
		Company:     "Acme",
		Location:    "Seattle, WA",
		Description: "Python and AWS work",
	}
	if _, err := store.SaveBatch(context.Background(), d.DB,
		[]domain.CleanedPosting{tf.Clean(raw, "seed.csv")}); err != nil {
		t.Fatal(err)
	}
}

func TestHealth(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "true") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestListPostingsEndpoint(t *testing.T) {
	d := testDeps(t)
	seedPosting(t, d)
	mux := NewMux(d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/postings?industry=Technology", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got []store.Posting
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Company != "Acme" {
		t.Errorf("postings = %+v", got)
	}
	if got[0].TitleNormalized != "Software Engineer" || got[0].SeniorityLevel != "Senior" {
		t.Errorf("cleaned fields missing: %+v", got[0])
	}
}

func TestTopSkillsEndpoint(t *testing.T) {
	d := testDeps(t)
	seedPosting(t, d)
	mux := NewMux(d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skills/top?limit=5", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []store.SkillCount
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, sc := range got {
		if sc.Skill == "Python" && sc.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("top skills = %+v", got)
	}
}

func TestPipelineRunEndpoint(t *testing.T) {
	d := testDeps(t)
	mux := NewMux(d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pipeline/run", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok": true`) &&
		!strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	// the run goroutine flips Running off when done
	deadline := time.Now().Add(2 * time.Second)
	for {
		st := d.PipelineStatus.Load().(PipelineStatus)
		if !st.Running && st.LastRunID == "test-run" {
			if st.LastRows != 2 || st.LastInserted != 2 {
				t.Errorf("status = %+v", st)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("pipeline status never settled: %+v", st)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPipelineRunRejectsGet(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pipeline/run", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestConfigGet(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "38472") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
