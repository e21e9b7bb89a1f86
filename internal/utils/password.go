package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for server-side password hashing. Deliberately the
// same cost profile as the client key derivation so that a credential
// stuffing attempt pays the same price online as offline.
const (
	passwordHashTime    uint32 = 1
	passwordHashMemory  uint32 = 64 * 1024 // 64 MiB
	passwordHashThreads uint8  = 4
	passwordHashKeyLen  uint32 = 32
	passwordSaltLen            = 16
)

// ErrMalformedPasswordHash is returned by VerifyPassword when the stored
// hash string does not follow the PHC argon2id format.
var ErrMalformedPasswordHash = errors.New("malformed password hash")

// HashPassword derives an Argon2id hash from the given password with a
// fresh random salt and returns it in PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt-b64>$<hash-b64>
//
// The encoded string is self-describing, so parameter upgrades only affect
// newly registered users while old hashes stay verifiable.
//
// Returns an error if reading random bytes for the salt fails.
func HashPassword(password string) (string, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error occurred during salt generation: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, passwordHashTime, passwordHashMemory, passwordHashThreads, passwordHashKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		passwordHashMemory, passwordHashTime, passwordHashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// VerifyPassword re-derives the Argon2id hash of password using the salt
// and cost parameters stored inside encodedHash and compares the result in
// constant time.
//
// Returns:
//
//	true, nil  - password matches the stored hash
//	false, nil - password does not match
//	false, err - encodedHash is not a valid PHC argon2id string
func VerifyPassword(password, encodedHash string) (bool, error) {
	salt, hash, time, memory, threads, err := decodePasswordHash(encodedHash)
	if err != nil {
		return false, err
	}

	derived := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, derived) == 1, nil
}

// decodePasswordHash splits a PHC argon2id string into its salt, hash and
// cost parameters. The expected layout after splitting on '$' is:
//
//	["", "argon2id", "v=19", "m=...,t=...,p=...", salt, hash]
func decodePasswordHash(encodedHash string) (salt, hash []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedPasswordHash, err)
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedPasswordHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedPasswordHash, err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedPasswordHash, err)
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedPasswordHash, err)
	}

	return salt, hash, time, memory, threads, nil
}
