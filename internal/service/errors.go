package service

import "errors"

// Business errors surfaced by the sync engine. Matched with [errors.Is].
var (
	// ErrVersionIncompatible is returned when a remote snapshot's major
	// version differs from the native one. Fatal to the merge; the user
	// must upgrade the client before syncing again.
	ErrVersionIncompatible = errors.New("vault version incompatible, upgrade required")

	// ErrSchemaMismatch is returned when two snapshots do not carry the
	// same table set. Fatal; the merge is aborted before any row is
	// touched.
	ErrSchemaMismatch = errors.New("vault schema mismatch")

	// ErrMalformedSnapshot is returned when a snapshot fails structural
	// validation: missing record IDs, non-positive timestamps, duplicate
	// IDs within a table, or an unknown table name. Fatal; nothing is
	// partially merged.
	ErrMalformedSnapshot = errors.New("malformed vault snapshot")

	// ErrAlreadySyncing is returned by BeginSync while another cycle is
	// in flight. Not a user-facing failure: the caller retries later.
	ErrAlreadySyncing = errors.New("sync already in progress")

	// ErrSyncConflict is returned when the bounded retry loop exhausted
	// its attempts with local edits still racing every upload. The
	// caller surfaces a "sync conflict, retry later" state.
	ErrSyncConflict = errors.New("sync conflict, retry later")

	// ErrSnapshotUnavailable wraps decrypt and transport failures that
	// prevent a snapshot from being obtained. The merge never starts.
	ErrSnapshotUnavailable = errors.New("could not obtain vault snapshot")

	// ErrEncryptionKeyNotSet is returned by crypto operations invoked
	// before a successful login armed the service with the vault key.
	ErrEncryptionKeyNotSet = errors.New("encryption key is not set")
)

// Authentication and account errors.
var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrRegisterOnServer        = errors.New("registration on server failed")
	ErrLoginOnServer           = errors.New("login on server failed")
)

// Request validation errors shared by the server vault service.
var (
	ErrValidationNoBlobProvided   = errors.New("no vault blob provided")
	ErrValidationNoUserID         = errors.New("no user ID for vault operation was given")
	ErrHasPendingSyncRequired     = errors.New("has_pending_sync must be set explicitly")
	ErrValidationBlobHashMismatch = errors.New("vault blob hash mismatch")

	// ErrVersionIsNotSpecified is returned at construction time when the
	// version endpoint has no schema version registry to serve from.
	ErrVersionIsNotSpecified = errors.New("vault schema version is not specified")
)
