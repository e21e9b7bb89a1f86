// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// TableName identifies one of the vault's record tables.
type TableName string

// The closed set of tables a vault snapshot may carry.
// Snapshot ingestion rejects any table outside this set, so the merge
// algorithm only ever sees names listed here.
const (
	TableItems       TableName = "items"
	TableFields      TableName = "fields"
	TablePasskeys    TableName = "passkeys"
	TableAttachments TableName = "attachments"
	TableSettings    TableName = "settings"
)

// TableOrder returns the canonical table ordering used for serialization
// and merge output. The order is fixed so two structurally equal snapshots
// produce identical bytes.
func TableOrder() []TableName {
	return []TableName{TableItems, TableFields, TablePasskeys, TableAttachments, TableSettings}
}

// KnownTable reports whether name belongs to the closed table set.
func KnownTable(name TableName) bool {
	switch name {
	case TableItems, TableFields, TablePasskeys, TableAttachments, TableSettings:
		return true
	}
	return false
}

// VaultSnapshot is one decrypted, fully materialized state of a vault.
// Snapshots are transient: a caller builds one from a decrypted blob or
// from the local store, passes it through validation and merge, and
// discards it. Nothing retains a snapshot beyond a single sync cycle.
type VaultSnapshot struct {
	// Version is the vault schema version in major.minor.patch form.
	// It is derived from the last entry of Migrations and duplicated
	// here so consumers do not re-parse migration identifiers.
	Version string `json:"version"`

	// Migrations is the ordered history of schema migrations applied
	// to this vault, oldest first. Each entry has the form
	// <timestamp>_<major.minor.patch>-<description>.
	Migrations []string `json:"migrations"`

	// Tables maps each table name to its full row set, tombstones
	// included.
	Tables map[TableName][]Record `json:"tables"`
}

// Normalize sorts every table's rows by record ID in place.
// Merge output and sealed blobs are normalized so that equal snapshots
// compare and encode identically regardless of construction order.
func (s *VaultSnapshot) Normalize() {
	for _, rows := range s.Tables {
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	}
}

// TotalRecords returns the number of rows across all tables,
// tombstones included.
func (s VaultSnapshot) TotalRecords() int {
	total := 0
	for _, rows := range s.Tables {
		total += len(rows)
	}
	return total
}

// IsEmpty reports whether the snapshot carries no rows at all.
func (s VaultSnapshot) IsEmpty() bool {
	return s.TotalRecords() == 0
}
