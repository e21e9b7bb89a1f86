package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock
// ─────────────────────────────────────────────

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	buildInfo    models.AppBuildInfo
	vaultVersion string
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.buildInfo
}

func (m *mockAppInfoService) GetVaultVersion(_ context.Context) string {
	return m.vaultVersion
}

// newHandlerWithAppInfo builds a Handler whose AppInfoService is replaced
// with the provided mock. All other service fields are left nil because
// getServerVersion does not use them.
func newHandlerWithAppInfo(t *testing.T, svc service.AppInfoService) *Handler {
	t.Helper()
	return NewHandler(
		&service.Services{AppInfoService: svc},
		logger.Nop(),
	)
}

// decodeVersion reads a models.VersionResponse out of the recorded body.
func decodeVersion(t *testing.T, rec *httptest.ResponseRecorder) models.VersionResponse {
	t.Helper()
	var got models.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGetServerVersion_WritesBuildAndVaultVersion(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{
		buildInfo:    models.NewAppBuildInfo("1.2.3", "2026-02-11", "deadbeef"),
		vaultVersion: "2.1.0",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	h.getServerVersion(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.VersionResponse{
		BuildVersion: "1.2.3",
		BuildDate:    "2026-02-11",
		BuildCommit:  "deadbeef",
		VaultVersion: "2.1.0",
	}, decodeVersion(t, rec))
}

func TestGetServerVersion_EmptyBuildInfoNormalized(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{
		buildInfo:    models.NewAppBuildInfo("", "", ""),
		vaultVersion: "2.1.0",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	h.getServerVersion(rec, req)

	got := decodeVersion(t, rec)
	assert.Equal(t, "N/A", got.BuildVersion)
	assert.Equal(t, "N/A", got.BuildDate)
	assert.Equal(t, "N/A", got.BuildCommit)
	assert.Equal(t, "2.1.0", got.VaultVersion)
}

func TestGetServerVersion_ViaRouter(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{
		buildInfo:    models.NewAppBuildInfo("3.0.0", "2026-03-01", "cafe42"),
		vaultVersion: "2.1.0",
	})
	router := h.Init()

	// No Authorization header: the version route is public.
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3.0.0", decodeVersion(t, rec).BuildVersion)
}

func TestGetServerVersion_ContentTypeJSON(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{
		buildInfo:    models.NewAppBuildInfo("1.0.0", "", ""),
		vaultVersion: "2.1.0",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	h.getServerVersion(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
