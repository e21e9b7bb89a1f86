// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestSyncSvc — хелпер для создания clientSyncService: транспорт,
// хранилище и крипто мокаются, merge/compat/validator/tracker настоящие.
func newTestSyncSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*clientSyncService,
	*mock.MockLocalVaultRepository,
	*mock.MockVaultServerAdapter,
	*mock.MockClientCryptoService,
) {
	t.Helper()

	mockStore := mock.NewMockLocalVaultRepository(ctrl)
	mockAdapter := mock.NewMockVaultServerAdapter(ctrl)
	mockCrypto := mock.NewMockClientCryptoService(ctrl)

	compat, err := NewCompatServiceFromMigrations(clientMigrationHistory)
	require.NoError(t, err)

	svc := NewClientSyncService(
		mockStore,
		mockAdapter,
		NewSyncTracker(0),
		compat,
		NewMergeService(),
		mockCrypto,
		validators.NewSnapshotValidator(),
		0,
		logger.Nop(),
	).(*clientSyncService)

	return svc, mockStore, mockAdapter, mockCrypto
}

// ── Sync: upload-only and download-only cycles ───────────────────────────────

func TestClientSyncService_Sync_FirstContact_UploadOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := itemsSnap(rec("a", 100, false, `{"name":"gmail"}`))
	sealed := []byte("sealed-local")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	// Аккаунт ещё ничего не загружал — сервер отвечает 404.
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockCrypto.EXPECT().SealSnapshot(local).Return(sealed, nil)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, sealed, req.Blob)
			assert.Equal(t, uint64(0), req.PrevRevision)
			assert.Equal(t, uint64(0), req.MutationSeqAtStart)
			require.NotNil(t, req.HasPendingSync)
			assert.False(t, *req.HasPendingSync)
			return models.UploadVaultResponse{Success: true, Revision: 1, MutationSeqAtStart: req.MutationSeqAtStart}, nil
		},
	)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state models.SyncState) error {
			assert.False(t, state.IsDirty)
			assert.False(t, state.IsSyncing)
			assert.Equal(t, uint64(1), state.ServerRevision)
			return nil
		},
	)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Attempts)
	assert.False(t, summary.Downloaded)
	assert.False(t, summary.Merged)
	assert.True(t, summary.Uploaded)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(1), summary.Revision)
	assert.Equal(t, uint64(1), svc.tracker.ServerRevision())
}

func TestClientSyncService_Sync_ServerWiped_ResetsRevisionToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Клиент помнит ревизию 7, но сервер потерял blob (восстановление из
	// пустого бэкапа). Первая загрузка обязана идти с PrevRevision 0.
	svc.tracker.Restore(models.SyncState{MutationSeq: 5, ServerRevision: 7})

	local := itemsSnap(rec("a", 100, false, `{"name":"gmail"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(7)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed"), nil)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, uint64(0), req.PrevRevision)
			assert.Equal(t, uint64(5), req.MutationSeqAtStart)
			return models.UploadVaultResponse{Success: true, Revision: 1}, nil
		},
	)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(1), summary.Revision)
}

func TestClientSyncService_Sync_PureDownload_NoUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Локально чисто; сервер ушёл вперёд на одну запись.
	svc.tracker.Restore(models.SyncState{MutationSeq: 2, ServerRevision: 1})

	local := itemsSnap(rec("shared", 100, false, `{"name":"s"}`))
	remote := itemsSnap(
		rec("shared", 100, false, `{"name":"s"}`),
		rec("new-remote", 200, false, `{"name":"theirs"}`),
	)
	blob := []byte("sealed-remote")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{Blob: blob, Revision: 2}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)
	mockStore.EXPECT().ApplySnapshot(ctx, gomock.Any(), false).DoAndReturn(
		func(_ context.Context, snap models.VaultSnapshot, _ bool) error {
			rows := snap.Tables[models.TableItems]
			require.Len(t, rows, 2)
			assert.Equal(t, "new-remote", rows[0].ID)
			assert.Equal(t, "shared", rows[1].ID)
			return nil
		},
	)
	// Ни SealSnapshot, ни UploadVault: серверу нечего отдавать.
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, summary.Downloaded)
	assert.True(t, summary.Merged)
	assert.False(t, summary.Uploaded)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(2), summary.Revision)
	assert.Equal(t, uint64(2), svc.tracker.ServerRevision())
	assert.Equal(t, 1, summary.Report.Totals().FromRemote)
	assert.Equal(t, 0, summary.Report.Totals().FromLocal)
}

// ── Sync: full download+merge+upload round ───────────────────────────────────

func TestClientSyncService_Sync_DownloadMergeUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Оба устройства редактировали офлайн: у нас "local-edit", у них
	// "remote-edit", общая запись не менялась.
	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 4, ServerRevision: 3})

	local := itemsSnap(
		rec("local-edit", 200, false, `{"name":"mine"}`),
		rec("shared", 100, false, `{"name":"s"}`),
	)
	remote := itemsSnap(
		rec("remote-edit", 300, false, `{"name":"theirs"}`),
		rec("shared", 100, false, `{"name":"s"}`),
	)
	downloadBlob := []byte("sealed-remote")
	uploadBlob := []byte("sealed-merged")

	var applied models.VaultSnapshot

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(3)).Return(models.VaultResponse{Blob: downloadBlob, Revision: 5}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(downloadBlob).Return(remote, nil)
	mockStore.EXPECT().ApplySnapshot(ctx, gomock.Any(), true).DoAndReturn(
		func(_ context.Context, snap models.VaultSnapshot, _ bool) error {
			applied = snap
			return nil
		},
	)
	mockCrypto.EXPECT().SealSnapshot(gomock.Any()).DoAndReturn(
		func(snap models.VaultSnapshot) ([]byte, error) {
			// Загружается ровно то, что легло в локальное хранилище.
			assert.Equal(t, applied, snap)
			return uploadBlob, nil
		},
	)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, uploadBlob, req.Blob)
			assert.Equal(t, uint64(5), req.PrevRevision)
			assert.Equal(t, uint64(4), req.MutationSeqAtStart)
			require.NotNil(t, req.HasPendingSync)
			assert.False(t, *req.HasPendingSync)
			return models.UploadVaultResponse{Success: true, Revision: 6, MutationSeqAtStart: req.MutationSeqAtStart}, nil
		},
	)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state models.SyncState) error {
			assert.False(t, state.IsDirty)
			assert.Equal(t, uint64(4), state.MutationSeq)
			assert.Equal(t, uint64(6), state.ServerRevision)
			return nil
		},
	)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, summary.Downloaded)
	assert.True(t, summary.Merged)
	assert.True(t, summary.Uploaded)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(6), summary.Revision)

	rows := applied.Tables[models.TableItems]
	require.Len(t, rows, 3)
	assert.Equal(t, "local-edit", rows[0].ID)
	assert.Equal(t, "remote-edit", rows[1].ID)
	assert.Equal(t, "shared", rows[2].ID)

	totals := summary.Report.Totals()
	assert.Equal(t, 1, totals.FromLocal)
	assert.Equal(t, 1, totals.FromRemote)
	assert.Equal(t, 1, totals.Equal)
}

// ── Sync: revision short-circuit ─────────────────────────────────────────────

func TestClientSyncService_Sync_NotModified_CleanShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{MutationSeq: 7, ServerRevision: 4})

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(rec("a", 100, false, `{"name":"a"}`)), nil)
	// 304: ревизия сервера совпадает с нашей, blob не передавался.
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(4)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, summary.Clean)
	assert.False(t, summary.Downloaded)
	assert.False(t, summary.Merged)
	assert.False(t, summary.Uploaded)
	assert.Equal(t, uint64(4), summary.Revision)
}

func TestClientSyncService_Sync_NotModified_DirtyUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 9, ServerRevision: 4})

	local := itemsSnap(rec("edited", 500, false, `{"name":"new"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(4)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed"), nil)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, uint64(4), req.PrevRevision)
			assert.Equal(t, uint64(9), req.MutationSeqAtStart)
			return models.UploadVaultResponse{Success: true, Revision: 5}, nil
		},
	)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.False(t, summary.Downloaded)
	assert.True(t, summary.Uploaded)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(5), summary.Revision)
	assert.False(t, svc.tracker.IsDirty())
}

// ── Sync: race detection and retries ─────────────────────────────────────────

func TestClientSyncService_Sync_RacedWriteDuringUpload_RetriesUntilClean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 1, ServerRevision: 0})

	local := itemsSnap(rec("a", 100, false, `{"name":"a"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil).Times(2)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed"), nil).Times(2)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			// Флаг отражает знание на момент запечатывания: правка ещё
			// не случилась, поэтому false несмотря на будущую гонку.
			assert.False(t, *req.HasPendingSync)
			// Пользователь сохраняет запись, пока запрос в полёте.
			svc.tracker.RecordMutation()
			return models.UploadVaultResponse{Success: true, Revision: 1}, nil
		},
	)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, uint64(1), req.PrevRevision)
			assert.Equal(t, uint64(2), req.MutationSeqAtStart)
			return models.UploadVaultResponse{Success: true, Revision: 2}, nil
		},
	)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil).Times(2)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Attempts)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(2), summary.Revision)
	assert.False(t, svc.tracker.IsDirty())
}

func TestClientSyncService_Sync_EditBeforeSeal_UploadsPendingFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 1, ServerRevision: 0})

	local := itemsSnap(rec("a", 100, false, `{"name":"a"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil).Times(2)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{}, adapter.ErrNotModified)

	mockCrypto.EXPECT().SealSnapshot(local).DoAndReturn(
		func(models.VaultSnapshot) ([]byte, error) {
			// Правка успевает до запечатывания: загружаемый blob её уже
			// не содержит, и клиент обязан сказать об этом серверу.
			svc.tracker.RecordMutation()
			return []byte("sealed-1"), nil
		},
	)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed-2"), nil)

	var flags []bool
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			require.NotNil(t, req.HasPendingSync)
			flags = append(flags, *req.HasPendingSync)
			return models.UploadVaultResponse{Success: true, Revision: uint64(len(flags))}, nil
		},
	).Times(2)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil).Times(2)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Attempts)
	assert.True(t, summary.Clean)
	assert.Equal(t, []bool{true, false}, flags)
}

func TestClientSyncService_Sync_EveryRoundRaced_ErrSyncConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 1, ServerRevision: 0})

	local := itemsSnap(rec("a", 100, false, `{"name":"a"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil).Times(3)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(2)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed"), nil).Times(3)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			// Пользователь печатает быстрее, чем ходит сеть.
			svc.tracker.RecordMutation()
			return models.UploadVaultResponse{Success: true, Revision: req.PrevRevision + 1}, nil
		},
	).Times(3)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil).Times(3)

	summary, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrSyncConflict)

	assert.Equal(t, 3, summary.Attempts)
	assert.False(t, summary.Clean)
	// Вольт остаётся грязным до следующей сессии, слот освобождён.
	assert.True(t, svc.tracker.IsDirty())
	assert.False(t, svc.tracker.IsCurrentlySyncing())
	assert.Equal(t, uint64(3), svc.tracker.ServerRevision())
}

func TestClientSyncService_Sync_RevisionConflict_RemergesAgainstNewerVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{IsDirty: true, MutationSeq: 3, ServerRevision: 1})

	local := itemsSnap(rec("mine", 400, false, `{"name":"mine"}`))
	remoteA := itemsSnap(rec("theirs", 200, false, `{"name":"theirs"}`))
	remoteB := itemsSnap(
		rec("theirs", 200, false, `{"name":"theirs"}`),
		rec("later", 500, false, `{"name":"later"}`),
	)
	blobA := []byte("sealed-rev2")
	blobB := []byte("sealed-rev3")

	var firstMerged models.VaultSnapshot

	// Первый круг: скачали rev2, слили, но CAS на сервере отказал —
	// другое устройство успело записать rev3.
	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{Blob: blobA, Revision: 2}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blobA).Return(remoteA, nil)
	mockStore.EXPECT().ApplySnapshot(ctx, gomock.Any(), true).DoAndReturn(
		func(_ context.Context, snap models.VaultSnapshot, _ bool) error {
			firstMerged = snap
			return nil
		},
	)
	mockCrypto.EXPECT().SealSnapshot(gomock.Any()).Return([]byte("upload-1"), nil)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).Return(models.UploadVaultResponse{}, adapter.ErrRevisionConflict)

	// Второй круг: локальное хранилище уже держит результат первого
	// слияния, скачиваем rev3 и доливаем поверх.
	mockStore.EXPECT().LoadSnapshot(ctx).DoAndReturn(
		func(context.Context) (models.VaultSnapshot, error) { return firstMerged, nil },
	)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(1)).Return(models.VaultResponse{Blob: blobB, Revision: 3}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blobB).Return(remoteB, nil)
	mockStore.EXPECT().ApplySnapshot(ctx, gomock.Any(), true).Return(nil)
	mockCrypto.EXPECT().SealSnapshot(gomock.Any()).DoAndReturn(
		func(snap models.VaultSnapshot) ([]byte, error) {
			rows := snap.Tables[models.TableItems]
			require.Len(t, rows, 3)
			assert.Equal(t, "later", rows[0].ID)
			assert.Equal(t, "mine", rows[1].ID)
			assert.Equal(t, "theirs", rows[2].ID)
			return []byte("upload-2"), nil
		},
	)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
			assert.Equal(t, uint64(3), req.PrevRevision)
			return models.UploadVaultResponse{Success: true, Revision: 4}, nil
		},
	)
	// Состояние персистится один раз: круг с конфликтом завершился ошибкой.
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(nil)

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Attempts)
	assert.True(t, summary.Downloaded)
	assert.True(t, summary.Merged)
	assert.True(t, summary.Uploaded)
	assert.True(t, summary.Clean)
	assert.Equal(t, uint64(4), summary.Revision)

	totals := summary.Report.Totals()
	assert.Equal(t, 1, totals.FromLocal)
	assert.Equal(t, 1, totals.FromRemote)
	assert.Equal(t, 1, totals.Equal)
}

func TestClientSyncService_Sync_AlreadySyncing_FailsFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Слот занят другим циклом.
	_, err := svc.tracker.BeginSync()
	require.NoError(t, err)

	summary, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrAlreadySyncing)
	assert.Equal(t, 1, summary.Attempts)
}

// ── Sync: precondition failures ──────────────────────────────────────────────

func TestClientSyncService_Sync_LoadSnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().LoadSnapshot(ctx).Return(models.VaultSnapshot{}, errors.New("database is locked"))

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.Contains(t, err.Error(), "loading local snapshot")
	// Слот single-flight освобождён, следующий Sync не заблокирован.
	assert.False(t, svc.tracker.IsCurrentlySyncing())
}

func TestClientSyncService_Sync_DownloadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrBadGateway)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.Contains(t, err.Error(), "downloading vault")
}

func TestClientSyncService_Sync_UnsealError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	blob := []byte("garbage")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(models.VaultSnapshot{}, errors.New("cipher: message authentication failed"))

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.Contains(t, err.Error(), "unsealing remote vault")
}

// ── Sync: ingestion gate ─────────────────────────────────────────────────────

func TestClientSyncService_Sync_MalformedRemote_AbortsBeforeMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Живая запись без payload — снапшот повреждён, merge не стартует
	// и ApplySnapshot не вызывается.
	remote := itemsSnap(rec("broken", 50, false, ""))
	blob := []byte("sealed")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(rec("a", 100, false, `{"name":"a"}`)), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestClientSyncService_Sync_ForeignTableInRemote_SchemaMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	remote := itemsSnap(rec("a", 100, false, `{"name":"a"}`))
	remote.Tables["totp_codes"] = []models.Record{rec("t", 10, false, `{"name":"x"}`)}
	blob := []byte("sealed")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(rec("a", 100, false, `{"name":"a"}`)), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestClientSyncService_Sync_RemoteVersionIncompatible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	remote := itemsSnap(rec("a", 100, false, `{"name":"a"}`))
	remote.Version = "2.0.0"
	remote.Migrations = nil
	blob := []byte("sealed")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(rec("b", 50, false, `{"name":"b"}`)), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrVersionIncompatible)
	assert.Contains(t, err.Error(), "2.0.0")
}

func TestClientSyncService_Sync_LocalVersionIncompatible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	// Локальная база от другого мажора (даунгрейд приложения поверх
	// новой схемы). Ворота проверяют обе стороны.
	local := itemsSnap(rec("b", 50, false, `{"name":"b"}`))
	local.Version = "0.9.0"
	local.Migrations = nil

	remote := itemsSnap(rec("a", 100, false, `{"name":"a"}`))
	blob := []byte("sealed")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, ErrVersionIncompatible)
	assert.Contains(t, err.Error(), "0.9.0")
}

// ── Sync: persistence failures ───────────────────────────────────────────────

func TestClientSyncService_Sync_ApplySnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	remote := itemsSnap(rec("a", 100, false, `{"name":"a"}`))
	blob := []byte("sealed")

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{Blob: blob, Revision: 1}, nil)
	mockCrypto.EXPECT().UnsealSnapshot(blob).Return(remote, nil)
	mockStore.EXPECT().ApplySnapshot(ctx, gomock.Any(), false).Return(errors.New("disk I/O error"))

	_, err := svc.Sync(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying merged snapshot")
}

func TestClientSyncService_Sync_SealError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := itemsSnap(rec("a", 100, false, `{"name":"a"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockCrypto.EXPECT().SealSnapshot(local).Return(nil, ErrEncryptionKeyNotSet)

	_, err := svc.Sync(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sealing snapshot")
}

func TestClientSyncService_Sync_UploadTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, mockCrypto := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := itemsSnap(rec("a", 100, false, `{"name":"a"}`))

	mockStore.EXPECT().LoadSnapshot(ctx).Return(local, nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(0)).Return(models.VaultResponse{}, adapter.ErrVaultNotFound)
	mockCrypto.EXPECT().SealSnapshot(local).Return([]byte("sealed"), nil)
	mockAdapter.EXPECT().UploadVault(ctx, gomock.Any()).Return(models.UploadVaultResponse{}, adapter.ErrForbidden)

	_, err := svc.Sync(ctx)
	require.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Contains(t, err.Error(), "uploading vault")
	assert.False(t, svc.tracker.IsCurrentlySyncing())
}

func TestClientSyncService_Sync_SaveSyncStateErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	svc.tracker.Restore(models.SyncState{MutationSeq: 7, ServerRevision: 4})

	mockStore.EXPECT().LoadSnapshot(ctx).Return(itemsSnap(rec("a", 100, false, `{"name":"a"}`)), nil)
	mockAdapter.EXPECT().DownloadVault(ctx, uint64(4)).Return(models.VaultResponse{}, adapter.ErrNotModified)
	mockStore.EXPECT().SaveSyncState(ctx, gomock.Any()).Return(errors.New("attempt to write a readonly database"))

	summary, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, summary.Clean)
}
