package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// RenderKey is the key for source rendered in format.
func RenderKey(format, source string) string {
	return "render:" + format + ":" + Hash([]byte(source))
}
