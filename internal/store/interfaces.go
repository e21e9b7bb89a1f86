package store

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// UserRepository persists server-side accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with the
	// generated ID. ErrLoginAlreadyExists when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin loads an account by its unique login.
	// ErrNoUserWasFound when it does not exist.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// VaultRepository persists one sealed vault blob per user with a
// revision counter. The revision is the only cross-device shared
// resource of the whole system and it is guarded by compare-and-swap,
// never by a lock.
type VaultRepository interface {
	// GetVault loads the user's blob row. ErrVaultNotFound when the
	// user has never uploaded.
	GetVault(ctx context.Context, userID uuid.UUID) (models.VaultBlob, error)

	// UpsertVault stores the blob if and only if the current stored
	// revision equals prevRevision; zero matches only a missing row
	// (first upload). On success the returned row carries the
	// incremented revision. ErrRevisionConflict when another device
	// won the race.
	UpsertVault(ctx context.Context, blob models.VaultBlob, prevRevision uint64) (models.VaultBlob, error)
}
