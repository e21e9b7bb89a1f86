package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
)

// clientVaultService is the local CRUD surface of the vault. Every write
// goes through the store's combined write+increment transaction and the
// resulting sequence is folded into the tracker, so no committed edit
// can escape the race detector.
type clientVaultService struct {
	localStore store.LocalVaultRepository
	tracker    *SyncTracker
	validator  validators.Validator
	uuid       *utils.UUIDGenerator
}

func NewClientVaultService(localStore store.LocalVaultRepository, tracker *SyncTracker) ClientVaultService {
	return &clientVaultService{
		localStore: localStore,
		tracker:    tracker,
		validator:  validators.NewSnapshotValidator(),
		uuid:       utils.NewUUIDGenerator(),
	}
}

// CreateRecord implements ClientVaultService. IDs are UUIDv7, so rows
// created on different devices can never collide and sort roughly by
// creation time.
func (s *clientVaultService) CreateRecord(ctx context.Context, table models.TableName, payload any) (models.Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.Record{}, fmt.Errorf("marshal payload: %w", err)
	}

	record := models.Record{
		ID:        s.uuid.Generate(),
		UpdatedAt: time.Now().UnixMilli(),
		Payload:   raw,
	}

	if err := s.validator.Validate(ctx, record, string(table)); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	seq, err := s.localStore.SaveRecord(ctx, table, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("save created record: %w", err)
	}
	s.tracker.ObserveMutation(seq)

	return record, nil
}

// UpdateRecord implements ClientVaultService. The record must already
// exist; updating a tombstoned row revives it, which is exactly how an
// undelete is expressed.
func (s *clientVaultService) UpdateRecord(ctx context.Context, table models.TableName, record models.Record) (models.Record, error) {
	if record.ID == "" {
		return models.Record{}, fmt.Errorf("%w: record ID is required", ErrInvalidDataProvided)
	}

	if _, err := s.localStore.GetRecord(ctx, table, record.ID); err != nil {
		return models.Record{}, fmt.Errorf("load existing record: %w", err)
	}

	record.UpdatedAt = time.Now().UnixMilli()

	if err := s.validator.Validate(ctx, record, string(table)); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	seq, err := s.localStore.SaveRecord(ctx, table, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("save updated record: %w", err)
	}
	s.tracker.ObserveMutation(seq)

	return record, nil
}

// DeleteRecord implements ClientVaultService. Deletion is a soft write:
// the row turns into a tombstone with a fresh timestamp so the deletion
// wins merges against older copies on other devices, yet loses to any
// newer edit. The payload is kept for a potential undelete.
func (s *clientVaultService) DeleteRecord(ctx context.Context, table models.TableName, id string) error {
	existing, err := s.localStore.GetRecord(ctx, table, id)
	if err != nil {
		return fmt.Errorf("load record for delete: %w", err)
	}

	seq, err := s.localStore.SaveRecord(ctx, table, existing.Tombstone(time.Now().UnixMilli()))
	if err != nil {
		return fmt.Errorf("save tombstone: %w", err)
	}
	s.tracker.ObserveMutation(seq)

	return nil
}

// GetRecord implements ClientVaultService.
func (s *clientVaultService) GetRecord(ctx context.Context, table models.TableName, id string) (models.Record, error) {
	record, err := s.localStore.GetRecord(ctx, table, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// ListRecords implements ClientVaultService. Tombstones are filtered out:
// reads see only what the user has not deleted.
func (s *clientVaultService) ListRecords(ctx context.Context, table models.TableName) ([]models.Record, error) {
	records, err := s.localStore.ListRecords(ctx, table, false)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
