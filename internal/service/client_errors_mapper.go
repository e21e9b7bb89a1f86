// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
)

// mapAdapterError translates the adapter's transport error into a
// service business error.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		case app.MsgNoVaultBlobProvided:
			return ErrValidationNoBlobProvided
		case app.MsgHasPendingSyncRequired:
			return ErrHasPendingSyncRequired
		case app.MsgNoUserIDProvided:
			return ErrValidationNoUserID
		case app.MsgBlobHashMismatch:
			return ErrValidationBlobHashMismatch
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrVaultNotFound), errors.Is(err, adapter.ErrNotFound):
		return store.ErrVaultNotFound

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgRevisionConflict:
			return store.ErrRevisionConflict
		}

	case errors.Is(err, adapter.ErrBadGateway):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}

	case errors.Is(err, adapter.ErrInternalServerError):
		return ErrTokenCreationFailed
	}

	return err
}

// mapValidatorError translates snapshot ingestion failures into the
// engine's error taxonomy: unknown tables are a schema problem, every
// other structural violation is snapshot corruption. Both abort the
// merge before it starts.
func mapValidatorError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, validators.ErrUnknownTable) {
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
}

// extractBody extracts the body from a message of the form
// "bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
