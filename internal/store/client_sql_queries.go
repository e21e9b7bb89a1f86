// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-vault-sync/models"

// vaultTableNames maps logical vault table names to their SQLite tables.
// The closed map doubles as an allowlist: identifiers cannot be bound as
// placeholders, so only names that are keys here ever reach query text.
var vaultTableNames = map[models.TableName]string{
	models.TableItems:       "vault_items",
	models.TableFields:      "vault_fields",
	models.TablePasskeys:    "vault_passkeys",
	models.TableAttachments: "vault_attachments",
	models.TableSettings:    "vault_settings",
}

const (
	// upsertRecord is the local-edit write: the caller is the single source
	// of truth for its own device, so it overwrites unconditionally.
	upsertRecord = `
		INSERT INTO %s (id, updated_at, is_deleted, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted,
			payload    = excluded.payload;`

	// upsertRecordIfNewer is the merge-result write: a row is replaced only
	// when the incoming timestamp is newer than or equal to the stored one,
	// so a local edit committed while the merge was running survives.
	upsertRecordIfNewer = `
		INSERT INTO %s (id, updated_at, is_deleted, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted,
			payload    = excluded.payload
		WHERE excluded.updated_at >= %s.updated_at;`

	getRecord = `
		SELECT
			id,
			updated_at,
			is_deleted,
			payload
		FROM %s
		WHERE id = ?;`

	listAllRecords = `
		SELECT
			id,
			updated_at,
			is_deleted,
			payload
		FROM %s
		ORDER BY id;`

	listLiveRecords = `
		SELECT
			id,
			updated_at,
			is_deleted,
			payload
		FROM %s
		WHERE is_deleted = 0
		ORDER BY id;`

	// bumpMutationSeq runs inside the same transaction as the row write it
	// accounts for, so a committed edit can never exist without its counter
	// increment.
	bumpMutationSeq = `
		UPDATE sync_state
		SET mutation_seq = mutation_seq + 1,
		    is_dirty     = 1
		WHERE id = 1
		RETURNING mutation_seq;`

	getSyncState = `
		SELECT
			is_dirty,
			mutation_seq,
			server_revision,
			is_syncing
		FROM sync_state
		WHERE id = 1;`

	// saveSyncState never lowers mutation_seq: the counter column is owned
	// by the write path and a write may commit while a sync cycle holds an
	// older in-memory copy.
	saveSyncState = `
		UPDATE sync_state
		SET is_dirty        = ?,
		    mutation_seq    = MAX(mutation_seq, ?),
		    server_revision = ?,
		    is_syncing      = ?
		WHERE id = 1;`

	applyDirtyFlag = `
		UPDATE sync_state
		SET is_dirty = ?
		WHERE id = 1;`
)
