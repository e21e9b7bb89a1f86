package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/migrations"
	"github.com/MKhiriev/go-vault-sync/models"
)

// Services aggregates the server-side service layer.
type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	AppInfoService AppInfoService
}

// NewServices wires the server services onto the given storages. The
// version endpoint is fed from the embedded client migration registry, so
// the server always reports the exact schema version its build ships.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	migrationNames, err := migrations.ClientVaultMigrations()
	if err != nil {
		return nil, fmt.Errorf("reading embedded vault migrations: %w", err)
	}

	compat, err := NewCompatServiceFromMigrations(migrationNames)
	if err != nil {
		return nil, fmt.Errorf("building version registry: %w", err)
	}

	appInfo, err := NewAppInfoService(buildInfo, compat, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		VaultService:   NewVaultService(storages.VaultRepository, cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
