package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// vaultRepository is the PostgreSQL-backed implementation of [VaultRepository].
// It keeps exactly one sealed blob row per user in the "vaults" table. The
// row's revision column is the only piece of state two devices ever contend
// for, and every write is guarded by compare-and-swap on it.
type vaultRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVaultRepository constructs a [VaultRepository] backed by the provided
// database connection and logger.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// GetVault loads the user's blob row.
//
// Error handling:
//   - No row for the user → [ErrVaultNotFound] (the user never uploaded).
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *vaultRepository) GetVault(ctx context.Context, userID uuid.UUID) (models.VaultBlob, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetVaultQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.GetVault").Msg("error: building query")
		return models.VaultBlob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var blob models.VaultBlob
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*vaultRepository.GetVault").Str("user_id", userID.String()).Msg("error: row is nil")
		return models.VaultBlob{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&blob.UserID, &blob.Blob, &blob.Revision, &blob.HasPendingSync, &blob.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultBlob{}, ErrVaultNotFound
		}
		log.Err(err).Str("func", "*vaultRepository.GetVault").Str("user_id", userID.String()).Msg("error: scanning error")
		return models.VaultBlob{}, err
	}

	return blob, nil
}

// UpsertVault stores blob if and only if the currently persisted revision
// equals prevRevision. A prevRevision of zero matches only a missing row,
// i.e. the user's very first upload, which is written at revision 1.
//
// Both paths are single statements, so the check and the write are atomic
// without an explicit transaction:
//   - first upload → INSERT .. ON CONFLICT DO NOTHING RETURNING ..
//   - every later upload → UPDATE .. WHERE revision = prevRevision RETURNING ..
//
// When the statement affects no row another device committed in between;
// that race surfaces as [ErrRevisionConflict] and the caller is expected to
// download, re-merge and try again.
func (r *vaultRepository) UpsertVault(ctx context.Context, blob models.VaultBlob, prevRevision uint64) (models.VaultBlob, error) {
	log := logger.FromContext(ctx)

	var (
		query string
		args  []any
		err   error
	)
	if prevRevision == 0 {
		query, args, err = buildInsertVaultQuery(blob)
	} else {
		query, args, err = buildUpdateVaultQuery(blob, prevRevision)
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.UpsertVault").Msg("error: building query")
		return models.VaultBlob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored models.VaultBlob
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*vaultRepository.UpsertVault").
			Str("user_id", blob.UserID.String()).
			Uint64("prev_revision", prevRevision).
			Msg("error: row is nil")
		return models.VaultBlob{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&stored.UserID, &stored.Blob, &stored.Revision, &stored.HasPendingSync, &stored.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// CAS miss: the stored revision moved (or the row already
			// exists on a first upload).
			log.Warn().
				Str("func", "*vaultRepository.UpsertVault").
				Str("user_id", blob.UserID.String()).
				Uint64("prev_revision", prevRevision).
				Msg("revision conflict: another device committed first")
			return models.VaultBlob{}, ErrRevisionConflict
		}
		log.Err(err).Str("func", "*vaultRepository.UpsertVault").Str("user_id", blob.UserID.String()).Msg("error: scanning error")
		return models.VaultBlob{}, err
	}

	return stored, nil
}
