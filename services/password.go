package services

import (
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit. Longer passwords are hashed on
// their first 72 bytes, which is what existing digests were made from.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps cost into the range bcrypt accepts.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

func (h PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns a salted digest of password.
func (h PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. Malformed digests never match.
func (h PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
