// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/models"
)

// mergeService is the concrete implementation of MergeService.
// It performs a purely in-memory row-level reconciliation of two vault
// snapshots; no storage layer or logger is required because the
// operation is stateless and produces no side effects.
type mergeService struct{}

// NewMergeService constructs a MergeService ready for use.
// Because Merge is a stateless, in-memory operation, no dependencies
// (storage, config, logger) are needed.
func NewMergeService() MergeService {
	return &mergeService{}
}

// Merge implements MergeService.
//
// Both snapshots must have passed the version compatibility gate and
// carry the same table set; version compatibility itself is not
// re-checked here.
//
// Per table the algorithm builds an O(1) index of the remote rows, then
// makes two linear passes:
//
//   - Pass 1 (over local rows): handles rows present locally, whether
//     or not they also exist remotely. A row on both sides resolves by
//     UpdatedAt — the strictly newer side wins in full, payload bytes
//     included; an exact timestamp tie keeps the local row and counts
//     as already converged.
//   - Pass 2 (over remote rows): carries over rows that exist only
//     remotely and were therefore invisible in pass 1.
//
// A tombstone is an ordinary row for this comparison: a newer deletion
// beats an older live row, and a newer write to a previously tombstoned
// ID revives it. The output row set is the union of both inputs — no ID
// is ever dropped.
//
// Structural problems abort the whole merge before any output is
// produced: mismatched table sets return ErrSchemaMismatch, and rows
// with a missing ID, a non-positive UpdatedAt, or a duplicated ID
// return ErrMalformedSnapshot. There is never a partially merged
// result.
//
// ctx cancellation is checked per table and at the start of each
// iteration so that callers can abort early on large vaults.
func (s *mergeService) Merge(
	ctx context.Context,
	local, remote models.VaultSnapshot,
) (models.VaultSnapshot, models.MergeReport, error) {
	if err := checkSameTableSet(local, remote); err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, err
	}

	// Validate both sides completely before emitting a single row:
	// a malformed record anywhere must leave no partial output behind.
	localIndex, err := indexSnapshot(local)
	if err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, fmt.Errorf("local snapshot: %w", err)
	}
	remoteIndex, err := indexSnapshot(remote)
	if err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, fmt.Errorf("remote snapshot: %w", err)
	}

	merged := models.VaultSnapshot{
		Version:    mergedVersion(local, remote),
		Migrations: mergedMigrations(local, remote),
		Tables:     make(map[models.TableName][]models.Record, len(local.Tables)),
	}
	report := models.NewMergeReport()

	for _, table := range models.TableOrder() {
		if err := ctx.Err(); err != nil {
			return models.VaultSnapshot{}, models.MergeReport{}, err
		}

		localRows, inLocal := local.Tables[table]
		remoteRows, inRemote := remote.Tables[table]
		if !inLocal && !inRemote {
			continue
		}

		out := make([]models.Record, 0, len(localRows)+len(remoteRows))

		// ── Pass 1: iterate over local rows ──────────────────────────────
		for _, lr := range localRows {
			if err := ctx.Err(); err != nil {
				return models.VaultSnapshot{}, models.MergeReport{}, err
			}

			rr, existsRemotely := remoteIndex[table][lr.ID]

			if !existsRemotely {
				// Created locally and never seen by the other side →
				// carried unchanged, tombstone or not.
				out = append(out, lr)
				report.CountLocal(table)
				continue
			}

			// Row exists on both sides: strictly newer UpdatedAt wins
			// in full; an exact tie is already-converged state.
			switch {
			case lr.UpdatedAt > rr.UpdatedAt:
				out = append(out, lr)
				report.CountLocal(table)

			case lr.UpdatedAt < rr.UpdatedAt:
				out = append(out, rr)
				report.CountRemote(table)

			default:
				out = append(out, lr)
				report.CountEqual(table)
			}
		}

		// ── Pass 2: carry over remote-only rows ──────────────────────────
		for _, rr := range remoteRows {
			if err := ctx.Err(); err != nil {
				return models.VaultSnapshot{}, models.MergeReport{}, err
			}

			if _, existsLocally := localIndex[table][rr.ID]; existsLocally {
				// Already resolved in pass 1.
				continue
			}

			out = append(out, rr)
			report.CountRemote(table)
		}

		merged.Tables[table] = out
	}

	// Canonical row order so the merge result is independent of input
	// iteration order and re-merges compare byte-for-byte.
	merged.Normalize()

	return merged, report, nil
}

// checkSameTableSet verifies both snapshots carry exactly the same table
// names. A table present on one side only means the snapshots were
// produced by structurally different schemas.
func checkSameTableSet(local, remote models.VaultSnapshot) error {
	if len(local.Tables) != len(remote.Tables) {
		return fmt.Errorf("%w: local has %d tables, remote has %d",
			ErrSchemaMismatch, len(local.Tables), len(remote.Tables))
	}
	for table := range local.Tables {
		if _, ok := remote.Tables[table]; !ok {
			return fmt.Errorf("%w: table %q missing on remote side", ErrSchemaMismatch, table)
		}
	}
	return nil
}

// indexSnapshot builds per-table ID lookup maps and rejects structurally
// broken rows. Duplicate IDs within a table would make LWW resolution
// ambiguous, so they are treated as corruption.
func indexSnapshot(snap models.VaultSnapshot) (map[models.TableName]map[string]models.Record, error) {
	index := make(map[models.TableName]map[string]models.Record, len(snap.Tables))

	for table, rows := range snap.Tables {
		if !models.KnownTable(table) {
			return nil, fmt.Errorf("%w: unknown table %q", ErrSchemaMismatch, table)
		}

		byID := make(map[string]models.Record, len(rows))
		for _, r := range rows {
			if r.ID == "" {
				return nil, fmt.Errorf("%w: record without ID in table %q", ErrMalformedSnapshot, table)
			}
			if r.UpdatedAt <= 0 {
				return nil, fmt.Errorf("%w: record %q in table %q has no update timestamp",
					ErrMalformedSnapshot, r.ID, table)
			}
			if _, dup := byID[r.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate ID %q in table %q",
					ErrMalformedSnapshot, r.ID, table)
			}
			byID[r.ID] = r
		}
		index[table] = byID
	}

	return index, nil
}

// mergedVersion picks the schema version of the merge output: the
// greater of the two. The gate guarantees equal majors, so this only
// matters when one side runs a newer same-major schema; choosing the
// maximum keeps the result independent of argument order.
func mergedVersion(local, remote models.VaultSnapshot) string {
	lv, lerr := models.ParseVaultVersion(local.Version)
	rv, rerr := models.ParseVaultVersion(remote.Version)
	switch {
	case lerr != nil:
		return remote.Version
	case rerr != nil:
		return local.Version
	}

	if compareVersions(lv, rv) >= 0 {
		return local.Version
	}
	return remote.Version
}

// mergedMigrations keeps the longer migration history, matching the side
// whose schema version won. Ties keep the local history, which is equal
// to the remote one in that case.
func mergedMigrations(local, remote models.VaultSnapshot) []string {
	if len(remote.Migrations) > len(local.Migrations) {
		return remote.Migrations
	}
	return local.Migrations
}

func compareVersions(a, b models.VaultVersion) int {
	switch {
	case a.Major != b.Major:
		return a.Major - b.Major
	case a.Minor != b.Minor:
		return a.Minor - b.Minor
	default:
		return a.Patch - b.Patch
	}
}
