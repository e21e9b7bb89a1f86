package service

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/models"
)

// clientCryptoService implements ClientCryptoService on top of the
// keychain. Its only state is the DEK unwrapped at login; everything
// else is stateless delegation. Safe for concurrent use: the sync
// worker seals in the background while the UI thread ciphers fields.
type clientCryptoService struct {
	keychain crypto.KeyChainService

	mu  sync.RWMutex
	dek []byte
}

// NewClientCryptoService constructs a ClientCryptoService. The returned
// service is unarmed: every seal or unseal call fails with
// ErrEncryptionKeyNotSet until SetEncryptionKey is called.
func NewClientCryptoService(keychain crypto.KeyChainService) ClientCryptoService {
	return &clientCryptoService{keychain: keychain}
}

// SetEncryptionKey implements ClientCryptoService. The key is copied, so
// the caller may zero its own buffer afterwards.
func (c *clientCryptoService) SetEncryptionKey(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dek = make([]byte, len(key))
	copy(c.dek, key)
}

// encryptionKey returns the armed DEK or ErrEncryptionKeyNotSet.
func (c *clientCryptoService) encryptionKey() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.dek) == 0 {
		return nil, ErrEncryptionKeyNotSet
	}
	return c.dek, nil
}

// SealSnapshot implements ClientCryptoService.
//
// The snapshot is normalized before sealing: with rows sorted by ID and
// JSON emitting map keys in order, equal snapshots always serialize to
// identical plaintext bytes regardless of the insertion history.
func (c *clientCryptoService) SealSnapshot(snap models.VaultSnapshot) ([]byte, error) {
	dek, err := c.encryptionKey()
	if err != nil {
		return nil, err
	}

	snap.Normalize()

	sealed, err := c.keychain.EncryptData(snap, dek)
	if err != nil {
		return nil, fmt.Errorf("sealing snapshot: %w", err)
	}

	return []byte(sealed), nil
}

// UnsealSnapshot implements ClientCryptoService. A wrong key surfaces as
// an authentication-tag failure from the keychain; a decodable plaintext
// that is not a snapshot fails at the JSON stage. Either way no partial
// snapshot escapes.
func (c *clientCryptoService) UnsealSnapshot(blob []byte) (models.VaultSnapshot, error) {
	dek, err := c.encryptionKey()
	if err != nil {
		return models.VaultSnapshot{}, err
	}

	var snap models.VaultSnapshot
	if err := c.keychain.DecryptData(string(blob), dek, &snap); err != nil {
		return models.VaultSnapshot{}, fmt.Errorf("unsealing snapshot: %w", err)
	}

	return snap, nil
}

// EncryptField implements ClientCryptoService.
func (c *clientCryptoService) EncryptField(plain string) (models.CipheredString, error) {
	dek, err := c.encryptionKey()
	if err != nil {
		return "", err
	}

	enc, err := c.keychain.EncryptData(plain, dek)
	if err != nil {
		return "", fmt.Errorf("encrypting field: %w", err)
	}

	return models.CipheredString(enc), nil
}

// DecryptField implements ClientCryptoService.
func (c *clientCryptoService) DecryptField(cipher models.CipheredString) (string, error) {
	dek, err := c.encryptionKey()
	if err != nil {
		return "", err
	}

	var plain string
	if err := c.keychain.DecryptData(string(cipher), dek, &plain); err != nil {
		return "", fmt.Errorf("decrypting field: %w", err)
	}

	return plain, nil
}
