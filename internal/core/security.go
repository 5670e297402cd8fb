// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// argonParams pins the cost of one password hash. Stored hashes carry
// their own parameters, so raising these only rehashes accounts on
// their next successful login.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

var currentArgonParams = argonParams{
	memory:  64 * 1024,
	time:    1,
	threads: 4,
	keyLen:  32,
}

const saltLength = 16

func HashPassword(password string) (string, error) {
	return hashPasswordWith(currentArgonParams, password)
}

func hashPasswordWith(p argonParams, password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		p.time,
		p.memory,
		p.threads,
		p.keyLen,
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory,
		p.time,
		p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// VerifyPasswordWithRehash checks the password and, when it matches a
// hash minted under stale parameters, returns a replacement hash for
// the caller to store.
func VerifyPasswordWithRehash(
	password, encodedHash string,
) (bool, string, error) {
	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil {
		return false, "", err
	}

	otherHash := argon2.IDKey(
		[]byte(password),
		salt,
		params.time,
		params.memory,
		params.threads,
		params.keyLen,
	)

	if subtle.ConstantTimeCompare(hash, otherHash) != 1 {
		return false, "", nil
	}

	if params != currentArgonParams {
		newHash, hashErr := HashPassword(password)
		if hashErr != nil {
			//nolint:nilerr // password verified; the upgrade can wait for the next login
			return true, "", nil
		}
		return true, newHash, nil
	}

	return true, "", nil
}

// dummyHash is what gets verified when the account does not exist, so
// an unknown email costs the same as a wrong password. Built on first
// use rather than at init so tests that never log in skip the cost.
var dummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword("workshop-tracker.enumeration-decoy")
	if err != nil {
		panic(fmt.Sprintf("core: dummy hash: %v", err))
	}
	return hash
})

func VerifyPasswordTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	hashToVerify := dummyHash()
	if encodedHash != nil && *encodedHash != "" {
		hashToVerify = *encodedHash
	}

	valid, newHash, err := VerifyPasswordWithRehash(password, hashToVerify)

	if encodedHash == nil || *encodedHash == "" {
		return false, "", nil
	}

	return valid, newHash, err
}

func decodeHash(encodedHash string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return p, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf(
			"unsupported algorithm: %s",
			parts[1],
		)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	_, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&p.memory,
		&p.time,
		&p.threads,
	)
	if err != nil {
		return p, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: argon2id digests are 32 bytes
	p.keyLen = uint32(len(hash))

	return p, salt, hash, nil
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func GenerateRefreshToken() (string, error) {
	return GenerateSecureToken(32)
}

// HashToken is for refresh and reset tokens, which are high-entropy
// random strings: a single unsalted SHA-256 pass is enough, and keeps
// the hash stable for indexed lookup.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func CompareTokenHash(token, hash string) bool {
	tokenHash := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(hash)) == 1
}
