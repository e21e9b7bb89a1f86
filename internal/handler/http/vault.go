package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

func (h *Handler) downloadVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.downloadVault").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var knownRevision uint64
	if raw := r.URL.Query().Get("revision"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			log.Err(err).Str("func", "*Handler.downloadVault").Msg("invalid revision query parameter")
			http.Error(w, "invalid revision query parameter", http.StatusBadRequest)
			return
		}
		knownRevision = parsed
	}

	vault, err := h.services.VaultService.Load(ctx, userID, knownRevision)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrVaultNotModified):
			// 304 без тела: у клиента уже актуальная ревизия.
			w.WriteHeader(http.StatusNotModified)
			return
		case errors.Is(err, store.ErrVaultNotFound):
			http.Error(w, "vault was not found", http.StatusNotFound)
			return
		default:
			log.Error().Str("func", "*Handler.downloadVault").Msg("error loading vault")
			http.Error(w, "error loading vault", statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, vault, http.StatusOK)
}

func (h *Handler) uploadVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.uploadVault").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var uploadRequest models.UploadVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&uploadRequest); err != nil {
		log.Err(err).Str("func", "*Handler.uploadVault").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.VaultService.Store(ctx, userID, uploadRequest)
	if err != nil {
		if errors.Is(err, store.ErrRevisionConflict) {
			log.Warn().Str("func", "*Handler.uploadVault").Uint64("prev_revision", uploadRequest.PrevRevision).Msg("vault revision conflict")
			http.Error(w, "vault revision conflict", http.StatusConflict)
			return
		}
		log.Err(err).Str("func", "*Handler.uploadVault").Msg("error storing vault")
		http.Error(w, "error storing vault", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
