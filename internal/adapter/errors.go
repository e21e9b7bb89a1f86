package adapter

import "errors"

// Transport sentinels mapped from HTTP status codes by mapHTTPError.
// Callers match them with [errors.Is] and never inspect status codes
// themselves.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// Vault endpoint sentinels carrying sync semantics.
var (
	// ErrNotModified is the advisory short-circuit: the server's
	// revision equals the one the client already holds, so no blob was
	// transferred. Expected control flow, not a failure.
	ErrNotModified = errors.New("vault not modified")

	// ErrVaultNotFound means the account has never stored a blob.
	// First-contact uploads follow.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrRevisionConflict is the server's compare-and-swap refusal:
	// another device stored a newer blob since this client last
	// downloaded. The client re-downloads, re-merges, and retries.
	ErrRevisionConflict = errors.New("vault revision conflict")
)
