package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

// vaultHashing verifies the transport integrity hash of an uploaded vault
// blob before the handler runs. The hash covers the raw blob bytes, not the
// JSON envelope, so re-encoding differences between clients cannot break it.
//
// Requests without a hash pass through: the check exists to catch transport
// corruption of multi-megabyte blobs, not to authenticate the sender (the
// bearer token does that).
func (h *Handler) vaultHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Blob []byte `json:"blob"`
			Hash string `json:"hash"`
		}

		h.logger.Debug().Str("func", "*Handler.vaultHashing").Msg("checking hash begins")

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.vaultHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		// Decode JSON from []byte
		if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
			h.logger.Err(err).Str("func", "*Handler.vaultHashing").Msg("failed to decode JSON")
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Hash == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Calculate hash from the raw blob bytes
		hashedBlob := hex.EncodeToString(utils.Hash(req.Blob))
		if hashedBlob != req.Hash {
			h.logger.Error().Str("func", "*Handler.vaultHashing").
				Str("hash from request", req.Hash).
				Str("hashed blob", hashedBlob).
				Msg("hashes are not equal")
			http.Error(w, "Integrity check failed", http.StatusBadRequest)
			return
		}

		h.logger.Debug().Str("func", "*Handler.vaultHashing").
			Str("hash from request", req.Hash).
			Str("hashed blob", hashedBlob).
			Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
