package workers

import (
	"context"
	"time"
)

// SyncJob is the part of the client's background sync job this worker
// drives. The job owns its own goroutine and ticker; the worker only
// triggers the start.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
}

// SyncWorker launches the periodic vault synchronization job when run.
type SyncWorker struct {
	ctx      context.Context
	job      SyncJob
	interval time.Duration
}

// NewSyncWorker binds the sync job to ctx. The job stops when ctx is
// cancelled; interval zero or negative selects the job's default period.
func NewSyncWorker(ctx context.Context, job SyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{ctx: ctx, job: job, interval: interval}
}

// Run implements Worker.
func (w *SyncWorker) Run() {
	w.job.Start(w.ctx, w.interval)
}
