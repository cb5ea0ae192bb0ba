package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/pipeline"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal         *atomic.Value // stores config.Config
	PipelineStatus *atomic.Value // stores httpapi.PipelineStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Pipeline entrypoint (inject for testability)
	RunPipeline func(ctx context.Context) (pipeline.RunResult, error)
}
