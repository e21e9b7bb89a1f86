package models

// RegisterRequest creates a new account.
type RegisterRequest struct {
	// Login is the unique account identifier.
	Login string `json:"login"`

	// Password is the master password in plain form; it only ever
	// travels over TLS and is immediately hashed server-side.
	Password string `json:"password"`

	// KeySalt is the client-generated salt for master-key derivation,
	// stored server-side so every device derives the same key.
	KeySalt string `json:"key_salt"`

	// WrappedKey is the vault data key wrapped by the derived master
	// key. Opaque to the server.
	WrappedKey string `json:"wrapped_key"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UploadVaultRequest stores a sealed vault blob on the server.
type UploadVaultRequest struct {
	// Blob is the sealed snapshot ciphertext.
	Blob []byte `json:"blob"`

	// PrevRevision is the revision the client last saw. The server
	// accepts the write only if its current revision still matches;
	// zero is valid only for the first upload of a vault.
	PrevRevision uint64 `json:"prev_revision"`

	// MutationSeqAtStart is the race-detection baseline captured when
	// the sync cycle began. The server echoes it back untouched; only
	// the client's own re-check against its mutation counter decides
	// whether the vault is clean.
	MutationSeqAtStart uint64 `json:"mutation_seq_at_start"`

	// HasPendingSync must be set explicitly on every store request:
	// true when the blob still contains changes the caller knows are
	// unsynced elsewhere. A nil value is rejected, there is no
	// implicit default.
	HasPendingSync *bool `json:"has_pending_sync"`

	// Hash is the integrity hash of Blob, verified before storing.
	Hash string `json:"hash,omitempty"`
}
