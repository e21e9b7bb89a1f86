package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultNotFound is returned when a vault blob is requested for a user
	// that has never stored one.
	ErrVaultNotFound = errors.New("vault was not found")

	// ErrVaultNotModified is returned by the advisory revision short-circuit:
	// the revision the client already holds is still current, so no blob
	// needs to be transferred. Expected control flow, not a failure.
	ErrVaultNotModified = errors.New("vault not modified")

	// ErrRevisionConflict is returned when the compare-and-swap check fails:
	// the revision supplied by the client does not match the current revision
	// stored in the database, meaning another device has stored a newer blob
	// since the client last synchronized.
	ErrRevisionConflict = errors.New("vault revision conflict occurred")

	// ErrRecordNotFound is returned when a local query targets a vault record
	// (identified by table and ID) that does not exist in the database.
	ErrRecordNotFound = errors.New("vault record was not found")

	// ErrStaleRecord is returned when an apply-path upsert is skipped because
	// the stored row carries a strictly newer UpdatedAt than the incoming one.
	// Harmless on its own; ApplySnapshot treats it as "keep the local edit".
	ErrStaleRecord = errors.New("stored record is newer")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan vault row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan vault rows")
)
