package store

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalVaultRepository is the low-level local vault repository backing
// one device's snapshot rows plus its persisted sync state.
//
// Writes come in two strictly separated flavors:
//
//   - SaveRecord is the user-edit path. It writes the row AND bumps the
//     persisted mutation sequence in one transaction, so a committed
//     edit can never exist without its counter increment.
//   - ApplySnapshot is the merge-result path. It never touches the
//     mutation sequence, because absorbing already-reconciled rows is
//     not a local edit.
type LocalVaultRepository interface {
	// SaveRecord upserts one record and increments the persisted
	// mutation sequence in the same transaction, returning the new
	// sequence value. This is the only path local edits may take.
	SaveRecord(ctx context.Context, table models.TableName, record models.Record) (uint64, error)

	// GetRecord loads one record by ID, tombstoned or live.
	// ErrRecordNotFound when the ID does not exist in the table.
	GetRecord(ctx context.Context, table models.TableName, id string) (models.Record, error)

	// ListRecords returns a table's rows ordered by ID. Tombstones are
	// included only when includeDeleted is set.
	ListRecords(ctx context.Context, table models.TableName, includeDeleted bool) ([]models.Record, error)

	// LoadSnapshot materializes the full local vault, tombstones
	// included, with its version and migration history.
	LoadSnapshot(ctx context.Context) (models.VaultSnapshot, error)

	// ApplySnapshot persists a merged snapshot. Each row is upserted
	// only when its UpdatedAt is newer than or equal to the stored
	// row's, so a local edit committed while the merge was running
	// survives the apply. hasPendingSync must be stated explicitly by
	// the caller and is persisted as the dirty flag; there is no
	// implicit default.
	ApplySnapshot(ctx context.Context, snap models.VaultSnapshot, hasPendingSync bool) error

	// GetSyncState loads the persisted sync state row.
	GetSyncState(ctx context.Context) (models.SyncState, error)

	// SaveSyncState persists the sync state row (dirty flag, mutation
	// sequence, server revision) after a completed cycle.
	SaveSyncState(ctx context.Context, state models.SyncState) error
}
