// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
)

// defaultMaxSyncAttempts bounds the merge+upload retry loop of one Sync
// call. Every retry means either a local edit raced the upload or
// another device won the revision compare-and-swap.
const defaultMaxSyncAttempts = 3

// clientSyncService drives full sync cycles: download, unseal, version
// gate, merge, local apply, seal, upload, race check. It owns no state
// of its own beyond its collaborators; all sync state lives in the
// tracker and the local store.
type clientSyncService struct {
	localStore store.LocalVaultRepository
	adapter    adapter.VaultServerAdapter
	tracker    *SyncTracker
	compat     CompatService
	merger     MergeService
	crypto     ClientCryptoService
	validator  validators.Validator

	maxAttempts int
	log         *logger.Logger
}

// NewClientSyncService wires a sync orchestrator. maxAttempts bounds
// the retry loop; zero or negative selects the default.
func NewClientSyncService(
	localStore store.LocalVaultRepository,
	serverAdapter adapter.VaultServerAdapter,
	tracker *SyncTracker,
	compat CompatService,
	merger MergeService,
	crypto ClientCryptoService,
	validator validators.Validator,
	maxAttempts int,
	log *logger.Logger,
) ClientSyncService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxSyncAttempts
	}

	return &clientSyncService{
		localStore:  localStore,
		adapter:     serverAdapter,
		tracker:     tracker,
		compat:      compat,
		merger:      merger,
		crypto:      crypto,
		validator:   validator,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Sync implements ClientSyncService.
//
// Each attempt is one complete begin→merge→upload→complete cycle. The
// loop runs again when the race detector reports an interleaved local
// write or the server refuses the upload's revision; after the last
// attempt the caller gets ErrSyncConflict and the vault simply stays
// dirty until the next session.
//
// Local writes are never blocked while a cycle runs: a racing edit
// only flips the outcome of CompleteSync and schedules the next round.
func (s *clientSyncService) Sync(ctx context.Context) (models.SyncSummary, error) {
	var summary models.SyncSummary

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		summary.Attempts = attempt

		seqAtStart, err := s.tracker.BeginSync()
		if err != nil {
			return summary, err
		}

		clean, err := s.runCycle(ctx, seqAtStart, &summary)
		if err != nil {
			s.tracker.Reset()
			if errors.Is(err, adapter.ErrRevisionConflict) {
				// Another device stored a newer blob mid-cycle: not a
				// failure, re-download and re-merge on the next round.
				s.log.Info().Str("func", "Sync").Int("attempt", attempt).
					Msg("revision conflict, remerging against newer server vault")
				continue
			}
			return summary, err
		}

		s.persistSyncState(ctx)

		if clean {
			summary.Clean = true
			s.log.Info().Str("func", "Sync").Int("attempts", attempt).
				Uint64("revision", summary.Revision).Msg("vault is clean")
			return summary, nil
		}

		s.log.Info().Str("func", "Sync").Int("attempt", attempt).
			Msg("local edits raced the upload, scheduling another round")
	}

	return summary, ErrSyncConflict
}

// runCycle executes one merge+upload round against the baseline
// sequence and reports whether the vault came out clean. Transport and
// decrypt failures surface as wrapped precondition errors; the merge is
// never entered without both snapshots in hand.
func (s *clientSyncService) runCycle(ctx context.Context, seqAtStart uint64, summary *models.SyncSummary) (bool, error) {
	local, err := s.localStore.LoadSnapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: loading local snapshot: %w", ErrSnapshotUnavailable, err)
	}

	prevRevision := s.tracker.ServerRevision()
	toUpload := local

	remoteResp, err := s.adapter.DownloadVault(ctx, prevRevision)
	switch {
	case errors.Is(err, adapter.ErrVaultNotFound):
		// First contact: nothing server-side to merge, upload only.
		prevRevision = 0

	case errors.Is(err, adapter.ErrNotModified):
		// The server still holds the blob this client last reconciled
		// against; the local snapshot is already a superset of it.

	case err != nil:
		return false, fmt.Errorf("%w: downloading vault: %w", ErrSnapshotUnavailable, mapAdapterError(err))

	default:
		summary.Downloaded = true
		prevRevision = remoteResp.Revision

		merged, report, err := s.mergeRemote(ctx, local, remoteResp.Blob)
		if err != nil {
			return false, err
		}
		summary.Merged = true
		summary.Report = report

		// Persist the reconciled state before uploading so a failed
		// upload never loses the downloaded rows. The dirty flag is
		// carried explicitly: the merged snapshot still holds local
		// changes the server has not confirmed.
		if err := s.localStore.ApplySnapshot(ctx, merged, s.tracker.IsDirty()); err != nil {
			return false, fmt.Errorf("applying merged snapshot: %w", err)
		}

		toUpload = merged

		if !s.uploadNeeded(report) {
			// Nothing local the server lacks: the cycle is a pure
			// download. Race check still decides the dirty flag.
			s.tracker.SetServerRevision(remoteResp.Revision)
			summary.Revision = remoteResp.Revision
			return s.tracker.CompleteSync(seqAtStart), nil
		}
	}

	if errors.Is(err, adapter.ErrNotModified) && !s.tracker.IsDirty() {
		// Server unchanged and no local edits pending: already in sync.
		summary.Revision = prevRevision
		return s.tracker.CompleteSync(seqAtStart), nil
	}

	resp, err := s.uploadSnapshot(ctx, toUpload, prevRevision, seqAtStart)
	if err != nil {
		return false, err
	}

	summary.Uploaded = true
	summary.Revision = resp.Revision
	s.tracker.SetServerRevision(resp.Revision)

	return s.tracker.CompleteSync(seqAtStart), nil
}

// mergeRemote unseals, validates, gates, and merges the downloaded blob
// against the local snapshot.
func (s *clientSyncService) mergeRemote(ctx context.Context, local models.VaultSnapshot, blob []byte) (models.VaultSnapshot, models.MergeReport, error) {
	remote, err := s.crypto.UnsealSnapshot(blob)
	if err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, fmt.Errorf("%w: unsealing remote vault: %w", ErrSnapshotUnavailable, err)
	}

	// Eager ingestion validation: anything structurally off the closed
	// schema set is rejected before the merge algorithm ever sees it.
	if err := s.validator.Validate(ctx, remote); err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, mapValidatorError(err)
	}

	for _, version := range []string{remote.Version, local.Version} {
		if res := s.compat.CheckCompatibility(version); !res.IsCompatible {
			return models.VaultSnapshot{}, models.MergeReport{}, fmt.Errorf(
				"%w: snapshot version %s vs native %s", ErrVersionIncompatible, version, res.Native)
		}
	}

	merged, report, err := s.merger.Merge(ctx, local, remote)
	if err != nil {
		return models.VaultSnapshot{}, models.MergeReport{}, fmt.Errorf("merging snapshots: %w", err)
	}

	return merged, report, nil
}

// uploadSnapshot seals and stores the snapshot under compare-and-swap,
// attaching the race-detection baseline for the server to echo.
func (s *clientSyncService) uploadSnapshot(ctx context.Context, snap models.VaultSnapshot, prevRevision, seqAtStart uint64) (models.UploadVaultResponse, error) {
	blob, err := s.crypto.SealSnapshot(snap)
	if err != nil {
		return models.UploadVaultResponse{}, fmt.Errorf("sealing snapshot: %w", err)
	}

	// The flag is computed, never defaulted: the blob is known to lack
	// any edit committed after the baseline was captured.
	hasPending := s.tracker.Snapshot().MutationSeq != seqAtStart

	resp, err := s.adapter.UploadVault(ctx, models.UploadVaultRequest{
		Blob:               blob,
		PrevRevision:       prevRevision,
		MutationSeqAtStart: seqAtStart,
		HasPendingSync:     &hasPending,
	})
	if err != nil {
		if errors.Is(err, adapter.ErrRevisionConflict) {
			return models.UploadVaultResponse{}, err
		}
		return models.UploadVaultResponse{}, fmt.Errorf("uploading vault: %w", mapAdapterError(err))
	}

	return resp, nil
}

// uploadNeeded reports whether the merge produced anything the server
// does not hold yet. Ties count as converged, so only FromLocal rows
// require a push.
func (s *clientSyncService) uploadNeeded(report models.MergeReport) bool {
	return s.tracker.IsDirty() || report.Totals().FromLocal > 0
}

// persistSyncState writes the tracker state through to the local store
// so a restart resumes with the correct dirty flag and counters.
func (s *clientSyncService) persistSyncState(ctx context.Context) {
	if err := s.localStore.SaveSyncState(ctx, s.tracker.Snapshot()); err != nil {
		s.log.Error().Err(err).Str("func", "persistSyncState").Msg("failed to persist sync state")
	}
}
