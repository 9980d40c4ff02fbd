package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "password123",
		},
		{
			name:     "complex password",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "long password",
			password: "this-is-a-very-long-password-that-should-still-work-correctly",
		},
		{
			name:     "unicode password",
			password: "密码123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if hash == "" {
				t.Error("Hash() returned empty string")
			}

			// Hash should be different from the original password
			if hash == tt.password {
				t.Error("Hash() returned the original password")
			}

			// Verify the hash works
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() returned false for correct password")
			}

			// Wrong password should not verify
			if hasher.Verify(tt.password+"-wrong", hash) {
				t.Error("Verify() returned true for wrong password")
			}
		})
	}
}

func TestPasswordHasher_HashUniqueness(t *testing.T) {
	hasher := NewPasswordHasher()
	password := "same-password"

	hash1, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	hash2, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt salts every hash
	if hash1 == hash2 {
		t.Error("two hashes of the same password are identical")
	}

	if !hasher.Verify(password, hash1) || !hasher.Verify(password, hash2) {
		t.Error("Verify() failed for one of the hashes")
	}
}

func TestPasswordHasher_DigestCost(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("cost-check")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost() error = %v", err)
	}
	if cost != bcryptCost {
		t.Errorf("digest cost = %d, want %d", cost, bcryptCost)
	}
}

func TestPasswordHasher_VerifyInvalidHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("password", "not-a-bcrypt-hash") {
		t.Error("Verify() returned true for a malformed hash")
	}

	if hasher.Verify("password", "") {
		t.Error("Verify() returned true for an empty hash")
	}
}
