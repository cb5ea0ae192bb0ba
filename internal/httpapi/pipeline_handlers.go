package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"jobmarket-engine/internal/pipeline"
)

type PipelineHandler struct {
	PipelineStatus *atomic.Value // httpapi.PipelineStatus
	RunPipeline    func(ctx context.Context) (pipeline.RunResult, error)
}

func (h PipelineHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.PipelineStatus.Load().(PipelineStatus)
	writeJSON(w, st)
}

func (h PipelineHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.PipelineStatus.Load().(PipelineStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.PipelineStatus.Store(PipelineStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		res, err := h.RunPipeline(context.Background())

		now := time.Now().Format(time.RFC3339)
		next := h.PipelineStatus.Load().(PipelineStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastRunID = res.RunID
		next.LastFiles = len(res.Files)
		next.LastRows = res.Rows
		next.LastInserted = res.Inserted
		next.LastDupes = res.Dupes
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.PipelineStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
