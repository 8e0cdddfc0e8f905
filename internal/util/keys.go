package util

import (
	"crypto/sha256"
	"fmt"
)

// MemoKey returns the storage key for a text input. Inputs longer than maxRaw
// are replaced by their full SHA-256 so keys stay bounded; the "h:" / "t:"
// markers keep hashed and literal keys from colliding.
func MemoKey(prefix, input string, maxRaw int) string {
	if len(input) <= maxRaw {
		return prefix + ":t:" + input
	}
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s:h:%x", prefix, sum)
}

// Fingerprint is a short, stable stand-in for a key in logs. Keys carry
// caller input and are not logged as is.
func Fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum[:6])
}
