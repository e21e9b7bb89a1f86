package models

// CipheredString is a string alias representing encrypted content:
// a base64-encoded AES-GCM ciphertext produced by the keychain.
// Payload fields of this type are opaque to the store and to the merge
// engine; only the crypto layer can open them.
type CipheredString string
