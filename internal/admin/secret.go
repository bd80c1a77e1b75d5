package admin

import "crypto/subtle"

// VerifySecret compares a presented value against the configured admin key.
// The comparison is constant-time so timing does not leak the key.
func VerifySecret(presented, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
