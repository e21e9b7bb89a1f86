package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// getServerVersion reports the build metadata and the native vault schema
// version. Clients call it before syncing to detect major-version skew.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)

	utils.WriteJSON(w, models.VersionResponse{
		BuildVersion: buildInfo.BuildVersion(),
		BuildDate:    buildInfo.BuildDate(),
		BuildCommit:  buildInfo.BuildCommit(),
		VaultVersion: h.services.AppInfoService.GetVaultVersion(ctx),
	}, http.StatusOK)
}
