package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hash strength against login latency. Stored digests
// carry their own cost, so changing this only affects new passwords.
const bcryptCost = 12

// PasswordHasher wraps bcrypt for storing and checking credentials.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at the service's standard cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash returns the salted bcrypt digest of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest
// reports false rather than an error.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
