package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// resetTokenBytes is the entropy of a reset token before hex encoding.
	resetTokenBytes = 32
	// ResetTokenTTL is how long a password-reset token stays valid.
	ResetTokenTTL = time.Hour
)

// GenerateResetToken returns a fresh high-entropy password-reset token and
// its absolute expiry.
func GenerateResetToken() (string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), time.Now().Add(ResetTokenTTL), nil
}
