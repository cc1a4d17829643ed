// Package credential hashes and verifies client passwords.
package credential

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is the longest secret bcrypt accepts.
const MaxSecretBytes = 72

// ErrSecretTooLong is returned by Hash for secrets over MaxSecretBytes.
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// Hasher produces salted one-way digests of plaintext secrets.
type Hasher interface {
	// Hash returns a digest embedding its own random salt.
	Hash(plaintext string) (string, error)
	// Verify reports whether digest was produced by Hash for plaintext.
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcrypt returns a bcrypt Hasher. Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxSecretBytes {
		return "", ErrSecretTooLong
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	if digest == "" || len(plaintext) > MaxSecretBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
