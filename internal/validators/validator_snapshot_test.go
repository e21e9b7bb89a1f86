// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validSnapshot() models.VaultSnapshot {
	return models.VaultSnapshot{
		Version: "1.6.1",
		Migrations: []string{
			"20251101120000_1.0.0-create_vault_tables.sql",
			"20260415103000_1.6.1-attachment_blob_hash_index.sql",
		},
		Tables: map[models.TableName][]models.Record{
			models.TableItems: {
				{ID: "item-1", UpdatedAt: 100, Payload: json.RawMessage(`{"name":"github","username":"octocat"}`)},
			},
			models.TableFields: {
				{ID: "field-1", UpdatedAt: 100, Payload: json.RawMessage(`{"item_id":"item-1","label":"recovery code","kind":"hidden","value":"ciphered"}`)},
			},
			models.TableSettings: {
				{ID: "setting-1", UpdatedAt: 100, Payload: json.RawMessage(`{"key":"theme","value":"dark"}`)},
			},
		},
	}
}

func validRecord() models.Record {
	return models.Record{
		ID:        "item-1",
		UpdatedAt: 100,
		Payload:   json.RawMessage(`{"name":"github"}`),
	}
}

func boolPtr(b bool) *bool { return &b }

// ---------------------------------------------------------------------------
// TestNewSnapshotValidator
// ---------------------------------------------------------------------------

func TestNewSnapshotValidator(t *testing.T) {
	v := NewSnapshotValidator()
	require.NotNil(t, v)
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, "a string")
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("VaultSnapshot value", func(t *testing.T) {
		s := validSnapshot()
		require.NoError(t, v.Validate(ctx, s))
	})

	t.Run("VaultSnapshot pointer", func(t *testing.T) {
		s := validSnapshot()
		require.NoError(t, v.Validate(ctx, &s))
	})

	t.Run("Record value", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, v.Validate(ctx, r))
	})

	t.Run("Record pointer", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("UploadVaultRequest pointer", func(t *testing.T) {
		req := models.UploadVaultRequest{Blob: []byte("sealed"), HasPendingSync: boolPtr(false)}
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("typed payload value and pointer", func(t *testing.T) {
		p := models.SettingPayload{Key: "theme", Value: "dark"}
		require.NoError(t, v.Validate(ctx, p))
		require.NoError(t, v.Validate(ctx, &p))
	})
}

// ---------------------------------------------------------------------------
// TestValidateSnapshot
// ---------------------------------------------------------------------------

func TestValidateSnapshot(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("valid with defaults", func(t *testing.T) {
		s := validSnapshot()
		require.NoError(t, v.Validate(ctx, s))
	})

	t.Run("missing version", func(t *testing.T) {
		s := validSnapshot()
		s.Version = ""
		require.ErrorIs(t, v.Validate(ctx, s, FieldVersion), ErrMissingVersion)
	})

	t.Run("malformed version", func(t *testing.T) {
		s := validSnapshot()
		s.Version = "v1.6"
		require.ErrorIs(t, v.Validate(ctx, s, FieldVersion), ErrMalformedVersion)
	})

	t.Run("migration without version marker", func(t *testing.T) {
		s := validSnapshot()
		s.Migrations = []string{"20251101120000_create_vault_tables.sql"}
		require.ErrorIs(t, v.Validate(ctx, s, FieldMigrations), ErrMalformedMigration)
	})

	t.Run("version disagrees with last migration", func(t *testing.T) {
		s := validSnapshot()
		s.Version = "1.6.0"
		require.ErrorIs(t, v.Validate(ctx, s, FieldMigrations), ErrVersionMigrationsDisagree)
	})

	t.Run("empty migration history is accepted", func(t *testing.T) {
		s := validSnapshot()
		s.Migrations = nil
		require.NoError(t, v.Validate(ctx, s))
	})

	t.Run("unknown table", func(t *testing.T) {
		s := validSnapshot()
		s.Tables["folders"] = []models.Record{{ID: "f-1", UpdatedAt: 100, Payload: json.RawMessage(`{}`)}}
		require.ErrorIs(t, v.Validate(ctx, s, FieldTables), ErrUnknownTable)
	})

	t.Run("duplicate record ID within a table", func(t *testing.T) {
		s := validSnapshot()
		s.Tables[models.TableItems] = append(s.Tables[models.TableItems],
			models.Record{ID: "item-1", UpdatedAt: 200, Payload: json.RawMessage(`{"name":"gitlab"}`)})
		require.ErrorIs(t, v.Validate(ctx, s, FieldTables), ErrDuplicateRecordID)
	})

	t.Run("record error names its table", func(t *testing.T) {
		s := validSnapshot()
		s.Tables[models.TableItems] = []models.Record{{ID: "", UpdatedAt: 100, Payload: json.RawMessage(`{"name":"x"}`)}}
		err := v.Validate(ctx, s, FieldTables)
		require.ErrorIs(t, err, ErrEmptyRecordID)
		assert.Contains(t, err.Error(), "table items")
	})

	t.Run("tombstone without payload is accepted", func(t *testing.T) {
		s := validSnapshot()
		s.Tables[models.TableItems] = []models.Record{{ID: "item-1", UpdatedAt: 300, IsDeleted: true}}
		require.NoError(t, v.Validate(ctx, s))
	})

	t.Run("unknown field", func(t *testing.T) {
		s := validSnapshot()
		require.ErrorIs(t, v.Validate(ctx, s, "revision"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidateRecord
// ---------------------------------------------------------------------------

func TestValidateRecord(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("empty ID", func(t *testing.T) {
		r := validRecord()
		r.ID = ""
		require.ErrorIs(t, v.Validate(ctx, r), ErrEmptyRecordID)
	})

	t.Run("missing update timestamp", func(t *testing.T) {
		r := validRecord()
		r.UpdatedAt = 0
		require.ErrorIs(t, v.Validate(ctx, r), ErrNoUpdateTimestamp)
	})

	t.Run("live record without payload", func(t *testing.T) {
		r := validRecord()
		r.Payload = nil
		require.ErrorIs(t, v.Validate(ctx, r), ErrEmptyPayload)
	})

	t.Run("tombstone skips payload checks", func(t *testing.T) {
		r := models.Record{ID: "item-1", UpdatedAt: 100, IsDeleted: true}
		require.NoError(t, v.Validate(ctx, r, string(models.TableItems)))
	})

	t.Run("payload checked against table scope", func(t *testing.T) {
		r := validRecord()
		r.Payload = json.RawMessage(`{"username":"octocat"}`) // no name
		require.ErrorIs(t, v.Validate(ctx, r, string(models.TableItems)), ErrMissingItemName)
	})

	t.Run("unknown table scope", func(t *testing.T) {
		r := validRecord()
		require.ErrorIs(t, v.Validate(ctx, r, "folders"), ErrUnknownTable)
	})

	t.Run("payload not checked without table scope", func(t *testing.T) {
		r := validRecord()
		r.Payload = json.RawMessage(`{"username":"octocat"}`)
		require.NoError(t, v.Validate(ctx, r))
	})
}

// ---------------------------------------------------------------------------
// TestValidateUploadVaultRequest
// ---------------------------------------------------------------------------

func TestValidateUploadVaultRequest(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		req := models.UploadVaultRequest{Blob: []byte("sealed"), HasPendingSync: boolPtr(true)}
		require.NoError(t, v.Validate(ctx, req))
	})

	t.Run("explicit false flag is valid", func(t *testing.T) {
		req := models.UploadVaultRequest{Blob: []byte("sealed"), HasPendingSync: boolPtr(false)}
		require.NoError(t, v.Validate(ctx, req))
	})

	t.Run("empty blob", func(t *testing.T) {
		req := models.UploadVaultRequest{HasPendingSync: boolPtr(false)}
		require.ErrorIs(t, v.Validate(ctx, req, FieldBlob), ErrEmptyBlob)
	})

	t.Run("absent has_pending_sync", func(t *testing.T) {
		req := models.UploadVaultRequest{Blob: []byte("sealed")}
		require.ErrorIs(t, v.Validate(ctx, req, FieldHasPendingSync), ErrMissingHasPendingSync)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := models.UploadVaultRequest{Blob: []byte("sealed"), HasPendingSync: boolPtr(true)}
		require.ErrorIs(t, v.Validate(ctx, req, "hash"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidatePayloadShapes
// ---------------------------------------------------------------------------

func TestValidatePayloadShapes(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("item requires name", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, models.ItemPayload{}), ErrMissingItemName)
	})

	t.Run("field requires owning item", func(t *testing.T) {
		p := models.FieldPayload{Label: "pin", Kind: models.FieldHidden}
		require.ErrorIs(t, v.Validate(ctx, p), ErrMissingOwningItem)
	})

	t.Run("field requires label", func(t *testing.T) {
		p := models.FieldPayload{ItemID: "item-1", Kind: models.FieldHidden}
		require.ErrorIs(t, v.Validate(ctx, p), ErrMissingFieldLabel)
	})

	t.Run("field rejects unknown kind", func(t *testing.T) {
		p := models.FieldPayload{ItemID: "item-1", Label: "pin", Kind: "barcode"}
		require.ErrorIs(t, v.Validate(ctx, p), ErrUnknownFieldKind)
	})

	t.Run("passkey requires relying party and credential", func(t *testing.T) {
		p := models.PasskeyPayload{ItemID: "item-1"}
		require.ErrorIs(t, v.Validate(ctx, p), ErrMissingRelyingParty)

		p.RPID = "github.com"
		require.ErrorIs(t, v.Validate(ctx, p), ErrMissingCredentialID)

		p.CredentialID = "cred-1"
		require.NoError(t, v.Validate(ctx, p))
	})

	t.Run("attachment rejects negative size", func(t *testing.T) {
		p := models.AttachmentPayload{ItemID: "item-1", FileName: "scan.pdf", SizeBytes: -1}
		require.ErrorIs(t, v.Validate(ctx, p), ErrNegativeSize)
	})

	t.Run("setting requires key", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, models.SettingPayload{Value: "dark"}), ErrMissingSettingKey)
	})

	t.Run("unknown JSON fields are tolerated", func(t *testing.T) {
		// Additive field written by a newer client of the same major version.
		r := models.Record{
			ID:        "item-1",
			UpdatedAt: 100,
			Payload:   json.RawMessage(`{"name":"github","totp_digits":8}`),
		}
		require.NoError(t, v.Validate(ctx, r, string(models.TableItems)))
	})

	t.Run("payload that is not JSON", func(t *testing.T) {
		r := models.Record{ID: "item-1", UpdatedAt: 100, Payload: json.RawMessage(`not-json`)}
		require.ErrorIs(t, v.Validate(ctx, r, string(models.TableItems)), ErrMalformedPayload)
	})
}
