package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID uuid.UUID `json:"-"`

	// Login is the unique user login identifier.
	// Typically used during authentication.
	Login string `json:"login"`

	// PasswordHash stores the user's master password representation.
	// This value MUST be a derived value (KDF output), never plaintext.
	// It is used only for authentication, never for key derivation.
	PasswordHash string `json:"-"`

	// KeySalt is the client-chosen salt for master-key derivation.
	// Stored so every device of the account derives the same key.
	// Not secret by itself.
	KeySalt string `json:"key_salt"`

	// WrappedKey is the vault data key wrapped by the derived master
	// key. Opaque to the server; never usable without the password.
	WrappedKey string `json:"wrapped_key"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// VaultBlob is the server-side storage unit: one sealed vault snapshot
// per user with its revision counter. The server never interprets the
// blob; conflict resolution is entirely client-side.
type VaultBlob struct {
	// UserID is the owner of the blob.
	UserID uuid.UUID `json:"-"`

	// Blob is the sealed snapshot ciphertext.
	Blob []byte `json:"blob"`

	// Revision increments by one on every accepted store. A store
	// request must present the current value to be accepted.
	Revision uint64 `json:"revision"`

	// HasPendingSync records the flag the storing client supplied.
	HasPendingSync bool `json:"has_pending_sync"`

	// UpdatedAt is the timestamp of the last accepted store.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultBlob model.
func (v VaultBlob) TableName() string {
	return "vaults"
}
