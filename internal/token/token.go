package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// tokenBytes is the number of random bytes in an invitation token.
// 16 bytes hex-encode to the 32-character token handed to applicants.
const tokenBytes = 16

var tokenPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// Generate creates a new single-use invitation token: 32 lowercase
// hexadecimal characters drawn from a cryptographically strong source.
func Generate() (string, error) {
	randomBytes := make([]byte, tokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}

// IsWellFormed reports whether s has the exact shape of an invitation token.
// It checks length and character class only; whether the token exists or has
// already been consumed is the registration workflow's concern.
func IsWellFormed(s string) bool {
	return tokenPattern.MatchString(s)
}
