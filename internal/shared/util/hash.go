package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns a short, stable fingerprint of s for logs, so transcript
// and summary bodies never appear in log output.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
