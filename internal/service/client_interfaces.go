package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// CompatService is the version compatibility gate consulted before any
// merge. Implementations hold the append-only registry of schema
// versions known to this build.
type CompatService interface {
	// CheckCompatibility decides whether a snapshot with the given
	// version string may be merged by this client. Pure; the result
	// distinguishes exactly-known versions from unknown-but-mergeable
	// ones (same major as native).
	CheckCompatibility(remote string) models.CompatibilityResult

	// Native returns the running client's own schema version, the last
	// entry of the registry.
	Native() models.VaultVersion
}

// MergeService reconciles two divergent snapshots of the same logical
// vault into one.
type MergeService interface {
	// Merge resolves every row by last-write-wins on UpdatedAt and
	// returns the union snapshot plus a per-table report of which side
	// won. It consumes both inputs in a single call and retains
	// neither. Merge is idempotent and commutative for a fixed input
	// pair; structural errors (ErrSchemaMismatch, ErrMalformedSnapshot)
	// abort with no partial output.
	Merge(ctx context.Context, local, remote models.VaultSnapshot) (models.VaultSnapshot, models.MergeReport, error)
}

// ClientCryptoService defines the client-side contract for sealing and
// opening vault material with the data-encryption key (DEK) unwrapped
// at login. The key must be set via SetEncryptionKey before calling any
// other method.
type ClientCryptoService interface {
	// SetEncryptionKey stores the DEK used for all subsequent seal and
	// unseal operations. Called once after a successful login.
	SetEncryptionKey(key []byte)

	// SealSnapshot canonicalizes the snapshot, encrypts it, and returns
	// the blob ready for upload. Equal snapshots seal from identical
	// plaintext bytes.
	SealSnapshot(snap models.VaultSnapshot) ([]byte, error)

	// UnsealSnapshot decrypts a downloaded blob and decodes the
	// snapshot. A wrong key, truncated blob, or undecodable plaintext
	// is a precondition failure: the merge never starts.
	UnsealSnapshot(blob []byte) (models.VaultSnapshot, error)

	// EncryptField ciphers one payload field for at-rest storage.
	EncryptField(plain string) (models.CipheredString, error)

	// DecryptField opens one ciphered payload field.
	DecryptField(cipher models.CipheredString) (string, error)
}

// ClientAuthService defines the client-side contract for registration
// and login, including master-key derivation and DEK bootstrap.
type ClientAuthService interface {
	// Register creates the account server-side: derives the master key
	// from the password with a fresh salt, generates a DEK, wraps it,
	// and ships salt and wrapped DEK with the registration request. On
	// success the crypto service is armed with the fresh DEK.
	Register(ctx context.Context, login, password string) error

	// Login authenticates against the server, derives the master key
	// from the returned salt, unwraps the DEK, and arms the crypto
	// service with it. Returns the account ID and the plaintext DEK.
	Login(ctx context.Context, login, password string) (uuid.UUID, []byte, error)
}

// ClientVaultService is the local CRUD surface of the vault. Every
// committed write runs through the store's combined write+increment
// transaction, so the mutation counter can never miss an edit.
type ClientVaultService interface {
	// CreateRecord assigns a fresh ID, stamps UpdatedAt, and commits
	// the record with its payload to the given table.
	CreateRecord(ctx context.Context, table models.TableName, payload any) (models.Record, error)

	// UpdateRecord re-stamps UpdatedAt and commits the changed record.
	UpdateRecord(ctx context.Context, table models.TableName, record models.Record) (models.Record, error)

	// DeleteRecord tombstones the record; the row is kept so the
	// deletion can be merged and later revived by a newer write.
	DeleteRecord(ctx context.Context, table models.TableName, id string) error

	// GetRecord loads one record, tombstoned or live.
	GetRecord(ctx context.Context, table models.TableName, id string) (models.Record, error)

	// ListRecords returns the live rows of a table.
	ListRecords(ctx context.Context, table models.TableName) ([]models.Record, error)
}

// ClientSyncService drives complete sync cycles against the server.
type ClientSyncService interface {
	// Sync runs one bounded-retry synchronization session: download,
	// unseal, gate, merge, apply, seal, upload, and the race-detection
	// check. It fails fast with ErrAlreadySyncing when a cycle is in
	// flight, and returns ErrSyncConflict when every attempt raced a
	// local edit.
	Sync(ctx context.Context) (models.SyncSummary, error)
}

// ClientSyncJob is a background worker that periodically calls Sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or
	// negative. Any previously running job is stopped before the new
	// one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until
	// it has fully terminated.
	Stop()
}
