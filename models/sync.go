package models

// SyncState is the per-device synchronization state.
// Exactly one instance exists per client install; it is owned by the
// local process and never shared across devices.
type SyncState struct {
	// IsDirty is true while the local vault holds changes the server
	// has not confirmed. Set on every local write, cleared only by a
	// sync cycle that completed without an interleaved write.
	IsDirty bool `json:"is_dirty"`

	// MutationSeq increments by exactly one on every committed local
	// write, deletes included. It is the race-detection baseline:
	// comparing its value before and after an upload tells whether
	// the user edited the vault mid-flight.
	MutationSeq uint64 `json:"mutation_seq"`

	// ServerRevision is the last revision number confirmed by the
	// server. Advisory only: it short-circuits downloads of a blob
	// the client already has, it is never used as a lock.
	ServerRevision uint64 `json:"server_revision"`

	// IsSyncing is the single-flight guard. True only while a sync
	// cycle is in flight; a second cycle attempt fails fast instead
	// of queueing.
	IsSyncing bool `json:"is_syncing"`
}

// SyncSummary describes the outcome of one Sync call for callers and
// for structured logging.
type SyncSummary struct {
	// Attempts is the number of merge+upload rounds the cycle used.
	Attempts int `json:"attempts"`

	// Downloaded is true when a remote blob was fetched (not served
	// from the revision short-circuit).
	Downloaded bool `json:"downloaded"`

	// Merged is true when the merge engine ran.
	Merged bool `json:"merged"`

	// Uploaded is true when a sealed blob was accepted by the server.
	Uploaded bool `json:"uploaded"`

	// Clean is true when the cycle ended with no pending local
	// changes (completeSync confirmed no interleaved write).
	Clean bool `json:"clean"`

	// Revision is the server revision after the cycle.
	Revision uint64 `json:"revision"`

	// Report is the merge report of the last merge round,
	// zero-valued when no merge ran.
	Report MergeReport `json:"report"`
}
