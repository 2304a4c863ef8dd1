// Package auth verifies the single admin credential. Passwords are stored
// as argon2id hashes in the PHC string format.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters (OWASP: m=19456, t=2, p=1).
const (
	Time    = 2
	Memory  = 19 * 1024
	Threads = 1
	KeyLen  = 32
	SaltLen = 16
)

// ErrMalformedHash is returned for strings that are not argon2id hashes.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Hash returns the argon2id hash of password, e.g.
// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>.
func Hash(password string) (string, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, Time, Memory, Threads, KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Memory, Time, Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

type params struct {
	memory, time uint32
	threads      uint8
	salt, key    []byte
}

func decode(encoded string) (params, error) {
	var p params
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, fmt.Errorf("%w: version %q", ErrMalformedHash, parts[2])
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}
	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	if len(p.key) == 0 {
		return p, ErrMalformedHash
	}
	return p, nil
}

// Verify reports whether password matches the encoded hash.
func Verify(password, encoded string) (bool, error) {
	p, err := decode(encoded)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(key, p.key) == 1, nil
}

// NeedsRehash reports whether encoded was made with other parameters than
// the current ones.
func NeedsRehash(encoded string) bool {
	p, err := decode(encoded)
	if err != nil {
		return true
	}
	return p.memory != Memory || p.time != Time || p.threads != Threads
}

// Credential is the configured admin password, held either as a hash or
// as plain text for development setups.
type Credential struct {
	hash  string
	plain []byte
}

// NewCredential builds a Credential from exactly one of password or hash.
func NewCredential(password, hash string) (*Credential, error) {
	switch {
	case password != "" && hash != "":
		return nil, errors.New("set either an admin password or a password hash, not both")
	case hash != "":
		if _, err := decode(hash); err != nil {
			return nil, err
		}
		return &Credential{hash: hash}, nil
	case password != "":
		return &Credential{plain: []byte(password)}, nil
	}
	return nil, errors.New("an admin password or password hash is required")
}

// Check reports whether password is the admin password.
func (c *Credential) Check(password string) bool {
	if c.hash != "" {
		ok, err := Verify(password, c.hash)
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(password), c.plain) == 1
}

// Hashed reports whether the credential is stored as a hash.
func (c *Credential) Hashed() bool { return c.hash != "" }
