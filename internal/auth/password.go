package auth

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is bcrypt's input limit in bytes.
const MaxPasswordLength = 72

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost      int
	dummyHash []byte
}

// NewHasher creates a Hasher. A cost outside bcrypt's accepted range falls
// back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Used by DummyVerify so lookups of unknown emails cost the same as a
	// real comparison.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("orgauth-dummy-password"), cost)
	return &Hasher{cost: cost, dummyHash: dummy}
}

// Cost returns the bcrypt cost factor in use.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash creates a salted bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed or empty hash
// is a mismatch, not an error.
func (h *Hasher) Verify(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyVerify burns the time of one comparison without a real hash.
func (h *Hasher) DummyVerify(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}

// GenerateSecretKey creates a random 32-byte hex secret for token signing.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
