package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// defaultSyncInterval is the background sync period when the caller does
// not specify one.
const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	log         *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.Sync on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{syncService: syncService, log: log}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls Sync every interval. If interval
// is zero or negative it defaults to 5 minutes. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// runOnce performs a single background cycle. A cycle already in flight
// simply skips this tick; conflicts that survived the retry loop are
// logged and left for the next tick, because the vault stays dirty and
// nothing is lost.
func (j *clientSyncJob) runOnce(ctx context.Context) {
	summary, err := j.syncService.Sync(ctx)
	switch {
	case err == nil:
		j.log.Debug().Str("func", "runOnce").
			Uint64("revision", summary.Revision).
			Int("attempts", summary.Attempts).
			Msg("background sync completed")

	case errors.Is(err, ErrAlreadySyncing):
		// Another trigger (manual sync, previous tick) holds the slot.

	default:
		j.log.Error().Err(err).Str("func", "runOnce").Msg("background sync failed")
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
