// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-vault-sync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoVaultBlobProvided is returned when a vault store request carries
	// an empty blob.
	MsgNoVaultBlobProvided = "no vault blob provided"

	// MsgHasPendingSyncRequired is returned when a vault store request omits
	// the has_pending_sync flag. The flag has no implicit default; every
	// caller must state whether the blob still contains unsynced changes.
	MsgHasPendingSyncRequired = "has_pending_sync must be set"

	// MsgNoUserIDProvided is returned when a handler requires a user ID (e.g.
	// extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgBlobHashMismatch is returned when the transport integrity hash
	// attached to an uploaded blob does not match the blob content.
	MsgBlobHashMismatch = "vault blob hash mismatch"

	// MsgAccessDenied is returned when the authenticated user attempts to
	// access or modify a resource that belongs to a different user.
	MsgAccessDenied = "access denied"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgVaultNotFound is returned when a download targets an account that
	// has never stored a vault blob.
	MsgVaultNotFound = "vault not found"

	// MsgRevisionConflict is returned when the compare-and-swap check fails:
	// the revision supplied by the client no longer matches the server's
	// current revision, meaning another device stored a newer blob. The
	// client should download and re-merge before retrying.
	MsgRevisionConflict = "vault revision conflict, please sync"
)
