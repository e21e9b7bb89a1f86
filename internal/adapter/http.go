package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string
	token   string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [VaultServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and initialises the shared HMAC
// hasher pool used for blob integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (VaultServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [VaultServerAdapter]. It stores token
// (whitespace-trimmed) for use in the Authorization header of all subsequent
// authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [VaultServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [VaultServerAdapter]. It POSTs the account credentials
// and wrapped key material to POST /api/auth/register. On success the bearer
// token from the response body is stored via SetToken. Returns an error if the
// request fails, the server returns a non-2xx status, or the response carries
// no token.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&authResp).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if authResp.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("register: no token in response")
	}

	h.SetToken(authResp.Token)
	return authResp, nil
}

// Login implements [VaultServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token from the response body is
// stored via SetToken and the full auth response is returned, carrying the
// key salt and the wrapped vault key needed to unlock the vault locally.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&authResp).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if authResp.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("login: no token in response")
	}

	h.SetToken(authResp.Token)
	return authResp, nil
}

// DownloadVault implements [VaultServerAdapter]. It GETs the sealed blob from
// GET /api/vault, passing knownRevision as a query parameter. HTTP 304 maps to
// [ErrNotModified] and HTTP 404 to [ErrVaultNotFound] before generic status
// mapping: both are expected sync control flow, not failures. Requires a valid
// bearer token.
func (h *httpServerAdapter) DownloadVault(ctx context.Context, knownRevision uint64) (models.VaultResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("revision", strconv.FormatUint(knownRevision, 10)).
		Get("/api/vault")
	if err != nil {
		return models.VaultResponse{}, fmt.Errorf("download vault request: %w", err)
	}

	// 304 и 404 — не ошибки, а ветки протокола синхронизации.
	switch resp.StatusCode() {
	case http.StatusNotModified:
		return models.VaultResponse{}, ErrNotModified
	case http.StatusNotFound:
		return models.VaultResponse{}, ErrVaultNotFound
	}

	if err = mapHTTPError(resp); err != nil {
		return models.VaultResponse{}, err
	}

	var vaultResp models.VaultResponse
	if err = json.Unmarshal(resp.Body(), &vaultResp); err != nil {
		return models.VaultResponse{}, fmt.Errorf("decode vault response: %w", err)
	}

	return vaultResp, nil
}

// UploadVault implements [VaultServerAdapter]. It computes the transport
// integrity hash over req.Blob and PUTs the request to PUT /api/vault. HTTP
// 409 maps to [ErrRevisionConflict]: the server's compare-and-swap on
// req.PrevRevision failed because another device stored a newer blob.
// Requires a valid bearer token.
func (h *httpServerAdapter) UploadVault(ctx context.Context, req models.UploadVaultRequest) (models.UploadVaultResponse, error) {
	req.Hash = hex.EncodeToString(utils.Hash(req.Blob))

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/vault")
	if err != nil {
		return models.UploadVaultResponse{}, fmt.Errorf("upload vault request: %w", err)
	}

	if resp.StatusCode() == http.StatusConflict {
		return models.UploadVaultResponse{}, fmt.Errorf("%w: %s", ErrRevisionConflict, strings.TrimSpace(string(resp.Body())))
	}

	if err = mapHTTPError(resp); err != nil {
		return models.UploadVaultResponse{}, err
	}

	var uploadResp models.UploadVaultResponse
	if err = json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return models.UploadVaultResponse{}, fmt.Errorf("decode upload response: %w", err)
	}

	return uploadResp, nil
}

// ServerVersion implements [VaultServerAdapter]. It GETs the server's build
// information and vault schema version from GET /api/version. The endpoint is
// public; no bearer token is attached.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (models.VersionResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	var versionResp models.VersionResponse
	if err = json.Unmarshal(resp.Body(), &versionResp); err != nil {
		return models.VersionResponse{}, fmt.Errorf("decode version response: %w", err)
	}

	return versionResp, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
