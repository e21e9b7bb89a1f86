// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the go-vault-sync server.
//
// The primary abstraction is [VaultServerAdapter], which decouples the
// service layer from the underlying protocol; the package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrRevisionConflict] for 409, [ErrNotModified]
// for 304, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// VaultServerAdapter defines transport-agnostic communication with the
// vault server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors
// to the sentinel values defined in this package.
type VaultServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called
	// immediately after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter,
	// or an empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success it stores the returned
	// bearer token via SetToken and returns the full auth response,
	// including the key material echo.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates the account. On success it stores the
	// returned bearer token via SetToken and returns the auth response
	// carrying the key salt and the wrapped vault key.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// DownloadVault fetches the sealed vault blob. knownRevision is
	// advisory: when it matches the server's current revision the
	// server answers without a body and ErrNotModified is returned.
	// ErrVaultNotFound when the account has never uploaded a blob.
	DownloadVault(ctx context.Context, knownRevision uint64) (models.VaultResponse, error)

	// UploadVault stores a sealed blob under compare-and-swap: the
	// request's PrevRevision must still match server state, otherwise
	// ErrRevisionConflict is returned. The response echoes the
	// race-detection baseline untouched. A transport integrity hash
	// over the blob is attached automatically.
	UploadVault(ctx context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error)

	// ServerVersion fetches the server's build information and the
	// vault schema version it was built against.
	ServerVersion(ctx context.Context) (models.VersionResponse, error)
}
