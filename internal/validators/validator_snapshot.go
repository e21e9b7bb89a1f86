package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldVersion targets the semantic version string of a vault snapshot.
	FieldVersion = "version"

	// FieldMigrations targets the ordered migration history of a vault snapshot.
	FieldMigrations = "migrations"

	// FieldTables targets the table map of a vault snapshot, including
	// every record inside it.
	FieldTables = "tables"

	// FieldRecordID targets the identifier of a single vault record.
	FieldRecordID = "record_id"

	// FieldUpdatedAt targets the last-write timestamp of a single vault record.
	FieldUpdatedAt = "updated_at"

	// FieldPayload targets the opaque payload bytes of a single vault record.
	FieldPayload = "payload"

	// FieldBlob targets the sealed vault blob of an upload request.
	FieldBlob = "blob"

	// FieldHasPendingSync targets the mandatory dirty-state flag of an
	// upload request. The flag is a pointer so that "absent" and "false"
	// stay distinguishable on the wire.
	FieldHasPendingSync = "has_pending_sync"
)

// SnapshotValidator implements the Validator interface for every shape a
// vault snapshot takes on its way through the engine: the snapshot itself,
// individual records, per-table typed payloads and the server-bound upload
// request.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type SnapshotValidator struct {
}

// NewSnapshotValidator constructs a new SnapshotValidator
// and returns it as the Validator interface.
func NewSnapshotValidator() Validator {
	return &SnapshotValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.VaultSnapshot / *models.VaultSnapshot
//   - models.Record / *models.Record — pass the owning table name as the
//     single scoping argument to also check the payload shape
//   - models.UploadVaultRequest / *models.UploadVaultRequest
//   - models.ItemPayload, models.FieldPayload, models.PasskeyPayload,
//     models.AttachmentPayload, models.SettingPayload (and pointers)
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *SnapshotValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultSnapshot:
		return v.validateSnapshot(ctx, value, fields...)
	case *models.VaultSnapshot:
		return v.validateSnapshot(ctx, *value, fields...)

	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.UploadVaultRequest:
		return v.validateUploadVaultRequest(ctx, value, fields...)
	case *models.UploadVaultRequest:
		return v.validateUploadVaultRequest(ctx, *value, fields...)

	case models.ItemPayload:
		return validateItemPayload(value)
	case *models.ItemPayload:
		return validateItemPayload(*value)

	case models.FieldPayload:
		return validateFieldPayload(value)
	case *models.FieldPayload:
		return validateFieldPayload(*value)

	case models.PasskeyPayload:
		return validatePasskeyPayload(value)
	case *models.PasskeyPayload:
		return validatePasskeyPayload(*value)

	case models.AttachmentPayload:
		return validateAttachmentPayload(value)
	case *models.AttachmentPayload:
		return validateAttachmentPayload(*value)

	case models.SettingPayload:
		return validateSettingPayload(value)
	case *models.SettingPayload:
		return validateSettingPayload(*value)

	default:
		return ErrUnsupportedType
	}
}

// validateSnapshot validates a whole VaultSnapshot before it is allowed to
// enter merge or persistence.
//
// Default validated fields (when none specified):
// Version, Migrations, Tables.
//
// Tables validation walks every record of every table: the table name must
// belong to the closed schema set, record identifiers must be unique within
// their table and every live record's payload must decode into the table's
// declared payload shape. Tombstones are exempt from payload checks so that
// deletions stay cheap to carry.
//
// Returns the first encountered validation error or nil.
func (v *SnapshotValidator) validateSnapshot(ctx context.Context, snapshot models.VaultSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVersion, FieldMigrations, FieldTables}
	}

	for _, f := range fields {
		switch f {
		case FieldVersion:
			if snapshot.Version == "" {
				return ErrMissingVersion
			}
			if _, err := models.ParseVaultVersion(snapshot.Version); err != nil {
				return fmt.Errorf("%w: %q", ErrMalformedVersion, snapshot.Version)
			}
		case FieldMigrations:
			if err := validateMigrationHistory(snapshot.Version, snapshot.Migrations); err != nil {
				return err
			}
		case FieldTables:
			for table, records := range snapshot.Tables {
				if !models.KnownTable(table) {
					return fmt.Errorf("%w: %q", ErrUnknownTable, table)
				}
				seen := make(map[string]struct{}, len(records))
				for i, record := range records {
					if err := v.validateRecord(ctx, record, string(table)); err != nil {
						return fmt.Errorf("table %s, record %d: %w", table, i, err)
					}
					if _, dup := seen[record.ID]; dup {
						return fmt.Errorf("table %s: %w: %q", table, ErrDuplicateRecordID, record.ID)
					}
					seen[record.ID] = struct{}{}
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecord validates a single vault record.
//
// The variadic arguments double as the table scope: when the first argument
// names a known vault table, the record's payload is additionally decoded
// and checked against that table's payload shape. Without a table argument
// only the generic record fields (ID, UpdatedAt, payload presence) are
// checked.
func (v *SnapshotValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	if record.ID == "" {
		return ErrEmptyRecordID
	}
	if record.UpdatedAt <= 0 {
		return ErrNoUpdateTimestamp
	}

	// Tombstones carry no payload: only the ID and the deletion timestamp
	// compete in a merge.
	if record.IsDeleted {
		return nil
	}

	if len(record.Payload) == 0 {
		return ErrEmptyPayload
	}

	if len(fields) == 0 {
		return nil
	}

	table := models.TableName(fields[0])
	if !models.KnownTable(table) {
		return fmt.Errorf("%w: %q", ErrUnknownTable, fields[0])
	}

	return validatePayloadShape(table, record.Payload)
}

// validateUploadVaultRequest validates the request a client sends when
// storing its sealed vault on the server.
//
// Default validated fields: Blob, HasPendingSync.
func (v *SnapshotValidator) validateUploadVaultRequest(ctx context.Context, request models.UploadVaultRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBlob, FieldHasPendingSync}
	}

	for _, f := range fields {
		switch f {
		case FieldBlob:
			if len(request.Blob) == 0 {
				return ErrEmptyBlob
			}
		case FieldHasPendingSync:
			if request.HasPendingSync == nil {
				return ErrMissingHasPendingSync
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
