package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

// defaultStaleAfter bounds how long an abandoned sync cycle may hold the
// single-flight slot before BeginSync reclaims it.
const defaultStaleAfter = 5 * time.Minute

// SyncTracker is the per-device synchronization state machine: dirty
// flag, mutation sequence counter and the single-flight syncing guard.
//
// It is an explicit, injected object rather than package state so tests
// and multi-account setups can run independent trackers side by side.
// All methods are safe for concurrent use; none of them ever blocks a
// local write on an in-flight sync cycle.
//
// Race detection is the BeginSync/CompleteSync pair: BeginSync captures
// the mutation sequence as the upload baseline and CompleteSync compares
// the counter against that baseline afterwards. Only that local
// comparison proves no write raced the upload; neither the server
// response nor any clock is trusted for it.
type SyncTracker struct {
	mu            sync.Mutex
	state         models.SyncState
	syncStartedAt time.Time
	staleAfter    time.Duration
}

// NewSyncTracker constructs a tracker with all-zero state, the state a
// freshly created vault starts from. staleAfter bounds stale-cycle
// recovery; zero or negative selects the default.
func NewSyncTracker(staleAfter time.Duration) *SyncTracker {
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}
	return &SyncTracker{staleAfter: staleAfter}
}

// Restore seeds the tracker from state persisted by the local store,
// called once at process start. A persisted IsSyncing is deliberately
// dropped: the cycle that set it did not survive the restart.
func (t *SyncTracker) Restore(state models.SyncState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = state
	t.state.IsSyncing = false
	t.syncStartedAt = time.Time{}
}

// RecordMutation registers one committed local write: it increments the
// mutation sequence by exactly one, marks the vault dirty, and returns
// the new sequence value. It never blocks on a sync cycle.
func (t *SyncTracker) RecordMutation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.MutationSeq++
	t.state.IsDirty = true
	return t.state.MutationSeq
}

// ObserveMutation folds a sequence value assigned by the store's
// combined write+increment transaction into the tracker. The counter
// only moves forward, so replaying an already-seen value is harmless.
func (t *SyncTracker) ObserveMutation(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq > t.state.MutationSeq {
		t.state.MutationSeq = seq
	}
	t.state.IsDirty = true
}

// BeginSync claims the single-flight slot and returns the current
// mutation sequence as the race-detection baseline for this cycle.
//
// A second cycle while one is in flight fails fast with
// ErrAlreadySyncing; callers retry later instead of queueing. A cycle
// that never reached CompleteSync (crash, cancellation, backgrounded
// app) releases the slot implicitly once it is older than staleAfter.
func (t *SyncTracker) BeginSync() (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.IsSyncing && time.Since(t.syncStartedAt) < t.staleAfter {
		return 0, ErrAlreadySyncing
	}

	t.state.IsSyncing = true
	t.syncStartedAt = time.Now()
	return t.state.MutationSeq, nil
}

// CompleteSync releases the single-flight slot and reports whether the
// vault is now clean.
//
// The vault is clean only when the mutation sequence still equals the
// BeginSync baseline, meaning no local write happened during the
// network round trip; the dirty flag is cleared in that case. Otherwise
// the dirty flag stays set and the caller schedules another cycle.
func (t *SyncTracker) CompleteSync(seqAtStart uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.IsSyncing = false
	t.syncStartedAt = time.Time{}

	if t.state.MutationSeq == seqAtStart {
		t.state.IsDirty = false
		return true
	}
	return false
}

// MarkDirty flags pending local changes without advancing the sequence,
// used when dirtiness is learned from persisted state rather than from
// a new write.
func (t *SyncTracker) MarkDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.IsDirty = true
}

// IsCurrentlySyncing reports whether a sync cycle holds the slot.
func (t *SyncTracker) IsCurrentlySyncing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.IsSyncing
}

// IsDirty reports whether the vault holds unconfirmed local changes.
func (t *SyncTracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.IsDirty
}

// Reset force-releases the single-flight slot. Explicit recovery path
// for callers that know the owning cycle is gone and cannot wait for
// the staleness window.
func (t *SyncTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.IsSyncing = false
	t.syncStartedAt = time.Time{}
}

// SetServerRevision stores the last server revision confirmed by a
// download or upload. Advisory: used to short-circuit downloads, never
// as a lock.
func (t *SyncTracker) SetServerRevision(rev uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.ServerRevision = rev
}

// ServerRevision returns the last confirmed server revision.
func (t *SyncTracker) ServerRevision() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.ServerRevision
}

// Snapshot returns a copy of the current state for persistence and
// diagnostics.
func (t *SyncTracker) Snapshot() models.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}
