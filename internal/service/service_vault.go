package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// vaultService is the concrete implementation of VaultService. It treats
// the vault blob as opaque ciphertext: the only server-side invariant it
// enforces is the revision compare-and-swap, plus request-shape validation
// and an integrity hash check before anything touches the database.
type vaultService struct {
	vaultRepository store.VaultRepository
	validator       validators.Validator

	// hashKey is the HMAC secret for the transport integrity check on
	// uploaded blobs. Shared with clients via configuration.
	hashKey string

	logger *logger.Logger
}

// NewVaultService constructs a VaultService backed by the given repository.
func NewVaultService(vaultRepository store.VaultRepository, cfg config.App, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		validator:       validators.NewSnapshotValidator(),
		hashKey:         cfg.HashKey,
		logger:          logger,
	}
}

// Store validates and persists a sealed vault blob for the user.
//
// The write is accepted only when req.PrevRevision equals the currently
// stored revision (zero matches only a missing row, i.e. the very first
// upload). On success the response carries the advanced revision and echoes
// MutationSeqAtStart back untouched; the server draws no conclusion from it.
//
// Returns:
//   - ErrValidationNoUserID when userID is the zero UUID.
//   - ErrValidationNoBlobProvided when the blob is empty.
//   - ErrHasPendingSyncRequired when has_pending_sync was not set explicitly.
//   - ErrValidationBlobHashMismatch when the supplied integrity hash does not
//     match the blob.
//   - store.ErrRevisionConflict (wrapped) when another device committed first.
func (v *vaultService) Store(ctx context.Context, userID uuid.UUID, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
	log := logger.FromContext(ctx)

	if userID == uuid.Nil {
		return models.UploadVaultResponse{}, ErrValidationNoUserID
	}

	if err := v.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("vault upload request rejected")
		switch {
		case errors.Is(err, validators.ErrEmptyBlob):
			return models.UploadVaultResponse{}, ErrValidationNoBlobProvided
		case errors.Is(err, validators.ErrMissingHasPendingSync):
			return models.UploadVaultResponse{}, ErrHasPendingSyncRequired
		default:
			return models.UploadVaultResponse{}, fmt.Errorf("vault upload request rejected: %w", err)
		}
	}

	if req.Hash != "" && utils.HashBytes(req.Blob, v.hashKey) != req.Hash {
		log.Error().Str("user_id", userID.String()).Msg("vault blob hash mismatch")
		return models.UploadVaultResponse{}, ErrValidationBlobHashMismatch
	}

	stored, err := v.vaultRepository.UpsertVault(ctx, models.VaultBlob{
		UserID:         userID,
		Blob:           req.Blob,
		HasPendingSync: *req.HasPendingSync,
	}, req.PrevRevision)
	if err != nil {
		// Revision conflicts are expected control flow under concurrent
		// devices, keep them quiet.
		if !errors.Is(err, store.ErrRevisionConflict) {
			log.Err(err).Str("user_id", userID.String()).Msg("vault store failed")
		}
		return models.UploadVaultResponse{}, fmt.Errorf("vault store failed: %w", err)
	}

	return models.UploadVaultResponse{
		Success:            true,
		Revision:           stored.Revision,
		MutationSeqAtStart: req.MutationSeqAtStart,
	}, nil
}

// Load returns the user's sealed blob with its revision.
//
// knownRevision is an advisory short-circuit: when it is non-zero and equals
// the stored revision, Load returns store.ErrVaultNotModified without the
// blob, saving the transfer. Correctness never depends on it; a client
// passing zero always receives the full blob.
//
// Returns:
//   - ErrValidationNoUserID when userID is the zero UUID.
//   - store.ErrVaultNotFound (wrapped) when the user never uploaded a vault.
//   - store.ErrVaultNotModified when knownRevision is current.
func (v *vaultService) Load(ctx context.Context, userID uuid.UUID, knownRevision uint64) (models.VaultResponse, error) {
	log := logger.FromContext(ctx)

	if userID == uuid.Nil {
		return models.VaultResponse{}, ErrValidationNoUserID
	}

	blob, err := v.vaultRepository.GetVault(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrVaultNotFound) {
			log.Err(err).Str("user_id", userID.String()).Msg("vault load failed")
		}
		return models.VaultResponse{}, fmt.Errorf("vault load failed: %w", err)
	}

	if knownRevision != 0 && knownRevision == blob.Revision {
		return models.VaultResponse{}, store.ErrVaultNotModified
	}

	return models.VaultResponse{
		Blob:           blob.Blob,
		Revision:       blob.Revision,
		HasPendingSync: blob.HasPendingSync,
	}, nil
}
