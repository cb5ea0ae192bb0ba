package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobmarket-engine/internal/clean"
	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/httpapi"
	"jobmarket-engine/internal/pipeline"
	"jobmarket-engine/internal/store"
)

func main() {
	inputFlag := flag.String("input", "", "process one CSV file or directory, print a summary, and exit")
	noDBFlag := flag.Bool("no-db", false, "clean without persisting")
	flag.Parse()

	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBMARKET_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over sqlite.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("engine lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running against %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		// vocab.yml is optional and survives config.yml rewrites
		if err := config.OverlayVocab(&cfg, filepath.Join(dataDir, "vocab.yml")); err != nil {
			return cfg, fmt.Errorf("vocab overlay: %w", err)
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("[config] warning: %s", w)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	var db *store.DB
	if !*noDBFlag && cfg.Pipeline.SaveToDB {
		dbPath := filepath.Join(dataDir, "jobmarket.db")
		db, err = store.Open(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := store.Migrate(db.Pool); err != nil {
			log.Fatal(err)
		}
		log.Printf("[store] db=%s", dbPath)
	}

	hub := events.NewHub()
	runner := newRunner(cfg, db, hub)

	// One-shot mode: clean the given file or directory and exit.
	if *inputFlag != "" {
		if err := runOnce(runner, *inputFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	var pipelineStatus atomic.Value
	pipelineStatus.Store(httpapi.PipelineStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:             poolOrNil(db),
		Hub:            hub,
		CfgVal:         &cfgVal,
		PipelineStatus: &pipelineStatus,
		UserCfgPath:    userCfgPath,
		LoadCfg:        loadCfg,
		RunPipeline: func(ctx context.Context) (pipeline.RunResult, error) {
			c := cfgVal.Load().(config.Config)
			r := newRunner(c, db, hub)
			return r.ProcessDirectory(ctx, c.Pipeline.RawDir)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Pipeline.WatchSeconds > 0 {
		go runner.Watch(ctx, cfg.Pipeline.RawDir, time.Duration(cfg.Pipeline.WatchSeconds)*time.Second)
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s", addr)

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("shutdown token: %s", token)

	log.Fatal(srv.Serve(ln))
}

func newRunner(cfg config.Config, db *store.DB, hub *events.Hub) *pipeline.Runner {
	vocab := clean.DefaultVocabulary().
		WithExtraSkills(cfg.Vocab.ExtraSkills).
		WithCountryAliases(cfg.Vocab.CountryAliases)

	return &pipeline.Runner{
		TF:      clean.NewTransformer(vocab),
		DB:      poolOrNil(db),
		Hub:     hub,
		Workers: cfg.Pipeline.Workers,
	}
}

func runOnce(r *pipeline.Runner, input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if info.IsDir() {
		res, err := r.ProcessDirectory(ctx, input)
		if err != nil {
			return err
		}
		log.Printf("done: %d file(s), %d failed, %d rows, %d inserted, %d dupes",
			len(res.Files), res.Failed, res.Rows, res.Inserted, res.Dupes)
		return nil
	}

	fr, err := r.ProcessFile(ctx, input)
	if err != nil {
		return err
	}
	log.Printf("done: %d rows, %d inserted, %d dupes", fr.Rows, fr.Result.Inserted, fr.Result.Duplicates)
	return nil
}
