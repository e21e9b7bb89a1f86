package service

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// appInfoService serves immutable build metadata plus the vault schema
// version this build was compiled against. The schema version comes from
// the same migration-derived registry the sync gate uses, so the version
// endpoint and the merge gate can never disagree.
type appInfoService struct {
	buildInfo models.AppBuildInfo
	compat    CompatService

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, compat CompatService, logger *logger.Logger) (AppInfoService, error) {
	if compat == nil {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		buildInfo: buildInfo,
		compat:    compat,
		logger:    logger,
	}, nil
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

func (s *appInfoService) GetVaultVersion(ctx context.Context) string {
	return s.compat.Native().String()
}
