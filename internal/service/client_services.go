package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/migrations"
)

// ClientServices aggregates the client-side service layer around one
// shared SyncTracker: the CRUD surface feeds mutations into it, the sync
// orchestrator reads baselines out of it.
type ClientServices struct {
	CryptoService ClientCryptoService
	AuthService   ClientAuthService
	VaultService  ClientVaultService
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
	CompatService CompatService

	// Tracker is exported so the client app can seed it from the
	// persisted sync state at startup.
	Tracker *SyncTracker
}

// NewClientServices wires the client services. The compatibility registry
// is built from the embedded migration filenames, the same files the local
// store was migrated with, so the gate and the schema cannot drift apart.
func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.VaultServerAdapter, cfg config.ClientConfig, log *logger.Logger) (*ClientServices, error) {
	migrationNames, err := migrations.ClientVaultMigrations()
	if err != nil {
		return nil, fmt.Errorf("reading embedded vault migrations: %w", err)
	}

	compat, err := NewCompatServiceFromMigrations(migrationNames)
	if err != nil {
		return nil, fmt.Errorf("building version registry: %w", err)
	}

	keychain := crypto.NewKeyChainService()
	cryptoSvc := NewClientCryptoService(keychain)
	authSvc := NewClientAuthService(serverAdapter, keychain, cryptoSvc)

	tracker := NewSyncTracker(cfg.Workers.StaleAfter)
	vaultSvc := NewClientVaultService(localStore.VaultRepository, tracker)

	syncSvc := NewClientSyncService(
		localStore.VaultRepository,
		serverAdapter,
		tracker,
		compat,
		NewMergeService(),
		cryptoSvc,
		validators.NewSnapshotValidator(),
		cfg.Workers.MaxSyncAttempts,
		log,
	)

	return &ClientServices{
		CryptoService: cryptoSvc,
		AuthService:   authSvc,
		VaultService:  vaultSvc,
		SyncService:   syncSvc,
		SyncJob:       NewClientSyncJob(syncSvc, log),
		CompatService: compat,
		Tracker:       tracker,
	}, nil
}
