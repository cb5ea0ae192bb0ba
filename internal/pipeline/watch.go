package pipeline

import (
	"context"
	"time"

	"jobmarket-engine/internal/scheduler"
)

// Watch re-runs the pipeline over dir on a fixed interval until ctx ends.
// Dedupe by content hash makes repeated runs over the same files idempotent.
func (r *Runner) Watch(ctx context.Context, dir string, every time.Duration) {
	scheduler.Every(ctx, every, "watch", func(ctx context.Context) error {
		_, err := r.ProcessDirectory(ctx, dir)
		return err
	})
}
