package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher defines minimal hashing interface (abstract so tests can swap
// in a cheap implementation).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(encoded, pw string) bool
}

// Argon2Hasher hashes passwords with argon2id and encodes parameters, salt and
// digest into a single PHC-style string, so stored hashes are self-describing.
// Hashing is deliberately expensive; maxParallel bounds how many hashes run at
// once so login bursts cannot occupy every serving goroutine.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen uint32
	sem     chan struct{}
}

// NewArgon2Hasher returns a hasher with the default work factor
// (64 MiB memory, 1 pass, 4 lanes).
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
		sem:     make(chan struct{}, 4),
	}
}

func (h *Argon2Hasher) Hash(pw string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(pw), salt, h.time, h.memory, h.threads, h.keyLen)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether pw matches the encoded hash. A malformed or corrupt
// stored hash verifies false rather than erroring: the caller treats it as
// invalid credentials.
func (h *Argon2Hasher) Verify(encoded, pw string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(pw), salt, params.time, params.memory, params.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(encoded string) (argon2Params, []byte, []byte, error) {
	var p argon2Params
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("not an argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, fmt.Errorf("parse params: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) == 0 {
		return p, nil, nil, fmt.Errorf("empty key")
	}
	return p, salt, key, nil
}
