package service

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// VaultService is the server-side contract for the blob store. The
// server never opens or reconciles vault contents; it only guards the
// revision counter.
type VaultService interface {
	// Store writes a sealed vault blob for the user. The request's
	// PrevRevision must match the stored revision (zero only for the
	// first upload), otherwise store.ErrRevisionConflict is returned
	// and nothing changes. HasPendingSync must be set explicitly;
	// requests without it fail with ErrHasPendingSyncRequired. The
	// response echoes MutationSeqAtStart untouched.
	Store(ctx context.Context, userID uuid.UUID, req models.UploadVaultRequest) (models.UploadVaultResponse, error)

	// Load returns the user's sealed blob with its revision. When
	// knownRevision equals the stored revision it short-circuits with
	// store.ErrVaultNotModified; a user without a stored blob yields
	// store.ErrVaultNotFound.
	Load(ctx context.Context, userID uuid.UUID, knownRevision uint64) (models.VaultResponse, error)
}

// AuthService is the server-side contract for account management and
// token issuing.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User, password string) (models.User, error)
	Login(ctx context.Context, login, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build and schema version information served by
// the version endpoint.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
	GetVaultVersion(ctx context.Context) string
}
