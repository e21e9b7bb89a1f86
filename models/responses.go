package models

// AuthResponse is returned by register and login.
type AuthResponse struct {
	// Token is the signed JWT for subsequent requests.
	Token string `json:"token"`

	// KeySalt is the stored master-key derivation salt.
	KeySalt string `json:"key_salt"`

	// WrappedKey is the stored vault data key, wrapped. Opaque to the
	// server; only a client holding the master password can open it.
	WrappedKey string `json:"wrapped_key"`
}

// VaultResponse carries a sealed vault blob down to a client.
type VaultResponse struct {
	// Blob is the sealed snapshot ciphertext.
	Blob []byte `json:"blob"`

	// Revision is the server revision of the blob.
	Revision uint64 `json:"revision"`

	// HasPendingSync echoes the flag the storing client supplied:
	// the blob was written by a device that still held unsynced
	// changes at the time.
	HasPendingSync bool `json:"has_pending_sync"`
}

// UploadVaultResponse acknowledges a vault store request.
type UploadVaultResponse struct {
	// Success is true when the blob was accepted and the revision
	// advanced.
	Success bool `json:"success"`

	// Revision is the new server revision after the write.
	Revision uint64 `json:"revision"`

	// MutationSeqAtStart echoes the client-supplied race-detection
	// baseline so the caller can correlate the response with the
	// local completeSync check. Never trusted as proof of cleanness.
	MutationSeqAtStart uint64 `json:"mutation_seq_at_start"`

	// Error carries a short machine-readable failure reason when
	// Success is false.
	Error string `json:"error,omitempty"`
}

// VersionResponse describes the running server build and the vault
// schema version it was built against.
type VersionResponse struct {
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
	VaultVersion string `json:"vault_version"`
}
