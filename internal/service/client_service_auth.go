package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// clientAuthService performs registration and login together with the
// key bootstrap: the server only ever sees the login, the password (for
// its own Argon2id hash) and opaque key material. KEK and DEK never
// leave this process.
type clientAuthService struct {
	adapter             adapter.VaultServerAdapter
	keychain            crypto.KeyChainService
	clientCryptoService ClientCryptoService
}

func NewClientAuthService(serverAdapter adapter.VaultServerAdapter, keychain crypto.KeyChainService, cryptoSvc ClientCryptoService) ClientAuthService {
	return &clientAuthService{
		adapter:             serverAdapter,
		keychain:            keychain,
		clientCryptoService: cryptoSvc,
	}
}

// Register implements ClientAuthService.
//
// It generates the account's key material client-side, ships only the
// wrapped form to the server, and arms the crypto service with the fresh
// DEK so the client is usable immediately after registration.
func (a *clientAuthService) Register(ctx context.Context, login, password string) error {
	// R1: генерируем соль и мастер-ключ данных
	salt, err := a.keychain.GenerateEncryptionSalt()
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}

	dek, err := a.keychain.GenerateDEK()
	if err != nil {
		return fmt.Errorf("error generating DEK: %w", err)
	}

	// R2: выводим KEK из пароля и заворачиваем DEK
	kek := a.keychain.GenerateKEK(password, salt)

	wrapped, err := a.keychain.GetEncryptedDEK(dek, kek)
	if err != nil {
		return fmt.Errorf("error wrapping DEK: %w", err)
	}

	// R3: на сервер уходят только login, пароль и непрозрачный key material.
	// All byte slices are base64-encoded for safe storage in the database.
	req := models.RegisterRequest{
		Login:      login,
		Password:   password,
		KeySalt:    base64.StdEncoding.EncodeToString(salt),
		WrappedKey: base64.StdEncoding.EncodeToString(wrapped),
	}

	if _, err := a.adapter.Register(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	a.clientCryptoService.SetEncryptionKey(dek)

	return nil
}

// Login implements ClientAuthService.
//
// The server verifies the password against its own hash and answers with
// the stored salt and wrapped key; everything after that happens locally.
func (a *clientAuthService) Login(ctx context.Context, login, password string) (uuid.UUID, []byte, error) {
	// L1: аутентификация на сервере, получаем токен + соль + wrapped key
	resp, err := a.adapter.Login(ctx, models.LoginRequest{Login: login, Password: password})
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	// L2: декодируем соль и выводим KEK из пароля + соли
	saltBytes, err := base64.StdEncoding.DecodeString(resp.KeySalt)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("decode key salt: %w", err)
	}
	kek := a.keychain.GenerateKEK(password, saltBytes)

	// L3: декодируем wrapped key и расшифровываем DEK с помощью KEK
	wrapped, err := base64.StdEncoding.DecodeString(resp.WrappedKey)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("decode wrapped key: %w", err)
	}

	dek, err := a.keychain.DecryptDEK(wrapped, kek)
	if err != nil {
		// The server accepted the password, so a failed unwrap means the
		// stored key material does not belong to this account.
		return uuid.Nil, nil, fmt.Errorf("unwrap vault key: %w", err)
	}

	a.clientCryptoService.SetEncryptionKey(dek)

	// L4: ID аккаунта достаём из subject выданного токена
	userID, err := utils.ParseUserIDFromJWT(resp.Token)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("parse account ID from token: %w", err)
	}

	return userID, dek, nil
}
