package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/migrations"
	"github.com/MKhiriev/go-vault-sync/models"
)

// localVaultRepository is the SQLite-backed implementation of
// [LocalVaultRepository]: one table per vault entity plus the single-row
// sync_state table, all living in the device's local database file.
type localVaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalVaultRepository constructs a [LocalVaultRepository] backed by the
// provided database connection and logger.
func NewLocalVaultRepository(db *DB, logger *logger.Logger) LocalVaultRepository {
	return &localVaultRepository{
		DB:     db,
		logger: logger,
	}
}

// physicalTable resolves a logical table name against the closed allowlist.
func physicalTable(table models.TableName) (string, error) {
	name, ok := vaultTableNames[table]
	if !ok {
		return "", fmt.Errorf("%w: unknown vault table %q", ErrBuildingSQLQuery, table)
	}
	return name, nil
}

// SaveRecord upserts one record and increments the persisted mutation
// sequence inside the same transaction. The returned value is the new
// sequence; the caller folds it into the in-memory tracker.
func (l *localVaultRepository) SaveRecord(ctx context.Context, table models.TableName, record models.Record) (uint64, error) {
	log := logger.FromContext(ctx)

	name, err := physicalTable(table)
	if err != nil {
		return 0, err
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.SaveRecord").
			Str("table", name).
			Str("id", record.ID).
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(upsertRecord, name),
		record.ID,
		record.UpdatedAt,
		record.IsDeleted,
		string(record.Payload),
	); err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.SaveRecord").
			Str("table", name).
			Str("id", record.ID).
			Msg("failed to upsert record")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var seq uint64
	if err := tx.QueryRowContext(ctx, bumpMutationSeq).Scan(&seq); err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.SaveRecord").
			Str("table", name).
			Str("id", record.ID).
			Msg("failed to bump mutation sequence")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localVaultRepository.SaveRecord").
			Str("table", name).
			Str("id", record.ID).
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return seq, nil
}

// GetRecord loads one record by ID, tombstoned or live.
func (l *localVaultRepository) GetRecord(ctx context.Context, table models.TableName, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	name, err := physicalTable(table)
	if err != nil {
		return models.Record{}, err
	}

	var (
		record  models.Record
		payload string
	)
	row := l.DB.QueryRowContext(ctx, fmt.Sprintf(getRecord, name), id)
	if err := row.Scan(&record.ID, &record.UpdatedAt, &record.IsDeleted, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "localVaultRepository.GetRecord").
			Str("table", name).
			Str("id", id).
			Msg("failed to scan record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if payload != "" {
		record.Payload = json.RawMessage(payload)
	}

	return record, nil
}

// ListRecords returns a table's rows ordered by ID. Tombstones are included
// only when includeDeleted is set.
func (l *localVaultRepository) ListRecords(ctx context.Context, table models.TableName, includeDeleted bool) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	name, err := physicalTable(table)
	if err != nil {
		return nil, err
	}

	query := listLiveRecords
	if includeDeleted {
		query = listAllRecords
	}

	rows, err := l.DB.QueryContext(ctx, fmt.Sprintf(query, name))
	if err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.ListRecords").
			Str("table", name).
			Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)
	for rows.Next() {
		var (
			record  models.Record
			payload string
		)
		if scanErr := rows.Scan(&record.ID, &record.UpdatedAt, &record.IsDeleted, &payload); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localVaultRepository.ListRecords").
				Str("table", name).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		if payload != "" {
			record.Payload = json.RawMessage(payload)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localVaultRepository.ListRecords").
			Str("table", name).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// LoadSnapshot materializes the full local vault, tombstones included. The
// snapshot's version and migration history come straight from the embedded
// migration set, so the snapshot always states the schema it was read under.
// Every schema table is present in the result, empty or not.
func (l *localVaultRepository) LoadSnapshot(ctx context.Context) (models.VaultSnapshot, error) {
	names, err := migrations.ClientVaultMigrations()
	if err != nil {
		return models.VaultSnapshot{}, err
	}
	version, err := models.ExtractVaultVersion(names[len(names)-1])
	if err != nil {
		return models.VaultSnapshot{}, err
	}

	snapshot := models.VaultSnapshot{
		Version:    version.String(),
		Migrations: names,
		Tables:     make(map[models.TableName][]models.Record, len(models.TableOrder())),
	}

	for _, table := range models.TableOrder() {
		records, err := l.ListRecords(ctx, table, true)
		if err != nil {
			return models.VaultSnapshot{}, err
		}
		snapshot.Tables[table] = records
	}

	return snapshot, nil
}

// ApplySnapshot persists a merged snapshot in one transaction. Rows are
// written with the newer-or-equal guard so a local edit committed while the
// merge was running survives, and the dirty flag is set to hasPendingSync
// in the same transaction. The mutation sequence is never touched here:
// absorbing reconciled rows is not a local edit.
func (l *localVaultRepository) ApplySnapshot(ctx context.Context, snap models.VaultSnapshot, hasPendingSync bool) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.ApplySnapshot").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, table := range models.TableOrder() {
		records, ok := snap.Tables[table]
		if !ok || len(records) == 0 {
			continue
		}

		name, err := physicalTable(table)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(upsertRecordIfNewer, name, name))
		if err != nil {
			log.Err(err).
				Str("func", "localVaultRepository.ApplySnapshot").
				Str("table", name).
				Msg("failed to prepare statement")
			return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
		}

		for _, record := range records {
			if _, execErr := stmt.ExecContext(ctx,
				record.ID,
				record.UpdatedAt,
				record.IsDeleted,
				string(record.Payload),
			); execErr != nil {
				stmt.Close()
				log.Err(execErr).
					Str("func", "localVaultRepository.ApplySnapshot").
					Str("table", name).
					Str("id", record.ID).
					Msg("failed to apply merged record")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
			}
		}
		stmt.Close()
	}

	if _, err := tx.ExecContext(ctx, applyDirtyFlag, hasPendingSync); err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.ApplySnapshot").
			Bool("has_pending_sync", hasPendingSync).
			Msg("failed to persist dirty flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localVaultRepository.ApplySnapshot").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// GetSyncState loads the persisted sync state row.
func (l *localVaultRepository) GetSyncState(ctx context.Context) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	var state models.SyncState
	row := l.DB.QueryRowContext(ctx, getSyncState)
	if err := row.Scan(&state.IsDirty, &state.MutationSeq, &state.ServerRevision, &state.IsSyncing); err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.GetSyncState").
			Msg("failed to scan sync state")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}

// SaveSyncState persists the sync state row. The mutation sequence column
// only ever moves forward; see saveSyncState.
func (l *localVaultRepository) SaveSyncState(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, saveSyncState,
		state.IsDirty,
		state.MutationSeq,
		state.ServerRevision,
		state.IsSyncing,
	); err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.SaveSyncState").
			Uint64("mutation_seq", state.MutationSeq).
			Uint64("server_revision", state.ServerRevision).
			Msg("failed to persist sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
