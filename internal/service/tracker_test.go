package service

import (
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fresh tracker ────────────────────────────────────────────────────────────

func TestSyncTracker_ZeroState(t *testing.T) {
	tr := NewSyncTracker(0)

	assert.False(t, tr.IsDirty())
	assert.False(t, tr.IsCurrentlySyncing())
	assert.Equal(t, uint64(0), tr.ServerRevision())
	assert.Equal(t, models.SyncState{}, tr.Snapshot())
}

// ── RecordMutation / ObserveMutation ─────────────────────────────────────────

func TestSyncTracker_RecordMutation(t *testing.T) {
	tr := NewSyncTracker(0)

	assert.Equal(t, uint64(1), tr.RecordMutation())
	assert.Equal(t, uint64(2), tr.RecordMutation())
	assert.Equal(t, uint64(3), tr.RecordMutation())
	assert.True(t, tr.IsDirty())
	assert.Equal(t, uint64(3), tr.Snapshot().MutationSeq)
}

func TestSyncTracker_RecordMutation_Concurrent(t *testing.T) {
	const writers = 50
	tr := NewSyncTracker(0)

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			tr.RecordMutation()
		}()
	}
	wg.Wait()

	// Every committed write increments by exactly one, no lost updates.
	assert.Equal(t, uint64(writers), tr.Snapshot().MutationSeq)
}

func TestSyncTracker_ObserveMutation_ForwardOnly(t *testing.T) {
	tr := NewSyncTracker(0)

	tr.ObserveMutation(7)
	assert.Equal(t, uint64(7), tr.Snapshot().MutationSeq)
	assert.True(t, tr.IsDirty())

	// Replaying an already-seen value never moves the counter back.
	tr.ObserveMutation(3)
	assert.Equal(t, uint64(7), tr.Snapshot().MutationSeq)

	tr.ObserveMutation(9)
	assert.Equal(t, uint64(9), tr.Snapshot().MutationSeq)
}

// ── BeginSync / CompleteSync — race detection ────────────────────────────────

func TestSyncTracker_CompleteSync_NoRace(t *testing.T) {
	tr := NewSyncTracker(0)
	tr.RecordMutation()
	tr.RecordMutation()

	seq, err := tr.BeginSync()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)
	assert.True(t, tr.IsCurrentlySyncing())

	// No writes during the network round trip → the vault ends clean.
	clean := tr.CompleteSync(seq)

	assert.True(t, clean)
	assert.False(t, tr.IsDirty())
	assert.False(t, tr.IsCurrentlySyncing())
}

func TestSyncTracker_CompleteSync_RacedWrite(t *testing.T) {
	tr := NewSyncTracker(0)
	tr.RecordMutation()

	seq, err := tr.BeginSync()
	require.NoError(t, err)

	// Эта запись не попала в загруженный blob — гонка.
	tr.RecordMutation()

	clean := tr.CompleteSync(seq)

	assert.False(t, clean)
	assert.True(t, tr.IsDirty(), "raced write must keep the vault dirty")
	assert.False(t, tr.IsCurrentlySyncing(), "slot is released even on races")
}

func TestSyncTracker_CompleteSync_RacedThenCleanCycle(t *testing.T) {
	tr := NewSyncTracker(0)
	tr.RecordMutation()

	// Round 1: a write races the upload.
	seq1, err := tr.BeginSync()
	require.NoError(t, err)
	tr.RecordMutation()
	require.False(t, tr.CompleteSync(seq1))

	// Round 2: the new baseline covers the raced write.
	seq2, err := tr.BeginSync()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq2)
	assert.True(t, tr.CompleteSync(seq2))
	assert.False(t, tr.IsDirty())
}

// ── BeginSync — single flight ────────────────────────────────────────────────

func TestSyncTracker_BeginSync_AlreadySyncing(t *testing.T) {
	tr := NewSyncTracker(0)

	_, err := tr.BeginSync()
	require.NoError(t, err)

	_, err = tr.BeginSync()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadySyncing)
}

func TestSyncTracker_BeginSync_ReclaimsStaleCycle(t *testing.T) {
	// Крошечное окно устаревания, чтобы не ждать 5 минут в тесте.
	tr := NewSyncTracker(20 * time.Millisecond)

	_, err := tr.BeginSync()
	require.NoError(t, err)

	// Within the window the slot is still owned.
	_, err = tr.BeginSync()
	require.ErrorIs(t, err, ErrAlreadySyncing)

	time.Sleep(30 * time.Millisecond)

	// The owning cycle never completed; the slot is reclaimed.
	seq, err := tr.BeginSync()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)
	assert.True(t, tr.IsCurrentlySyncing())
}

func TestSyncTracker_Reset_ReleasesSlot(t *testing.T) {
	tr := NewSyncTracker(0)

	_, err := tr.BeginSync()
	require.NoError(t, err)

	tr.Reset()

	assert.False(t, tr.IsCurrentlySyncing())
	_, err = tr.BeginSync()
	assert.NoError(t, err, "Reset must release the single-flight slot immediately")
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestSyncTracker_Restore(t *testing.T) {
	tr := NewSyncTracker(0)

	tr.Restore(models.SyncState{
		IsDirty:        true,
		MutationSeq:    42,
		ServerRevision: 7,
		IsSyncing:      true, // persisted mid-cycle, the cycle is gone
	})

	snap := tr.Snapshot()
	assert.True(t, snap.IsDirty)
	assert.Equal(t, uint64(42), snap.MutationSeq)
	assert.Equal(t, uint64(7), snap.ServerRevision)
	assert.False(t, snap.IsSyncing, "a persisted in-flight flag must not survive a restart")

	// The restored counter is the baseline for the next cycle.
	seq, err := tr.BeginSync()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), seq)
}

// ── Dirty flag and revision bookkeeping ──────────────────────────────────────

func TestSyncTracker_MarkDirty(t *testing.T) {
	tr := NewSyncTracker(0)

	tr.MarkDirty()

	assert.True(t, tr.IsDirty())
	assert.Equal(t, uint64(0), tr.Snapshot().MutationSeq, "MarkDirty must not advance the sequence")
}

func TestSyncTracker_ServerRevision(t *testing.T) {
	tr := NewSyncTracker(0)

	tr.SetServerRevision(5)
	assert.Equal(t, uint64(5), tr.ServerRevision())

	tr.SetServerRevision(6)
	assert.Equal(t, uint64(6), tr.ServerRevision())
}

// TestSyncTracker_LocalWritesNeverBlocked pins the core liveness property:
// a local write commits instantly while a sync cycle holds the slot.
func TestSyncTracker_LocalWritesNeverBlocked(t *testing.T) {
	tr := NewSyncTracker(0)

	seq, err := tr.BeginSync()
	require.NoError(t, err)

	done := make(chan uint64, 1)
	go func() { done <- tr.RecordMutation() }()

	select {
	case got := <-done:
		assert.Equal(t, seq+1, got)
	case <-time.After(1 * time.Second):
		t.Fatal("RecordMutation blocked while a sync cycle was in flight")
	}

	assert.False(t, tr.CompleteSync(seq), "the interleaved write must be detected")
}
