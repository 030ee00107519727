// Package cache stores extraction results so that re-checking the same
// source text does not repeat the (slow, billable) extraction call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from prepared source text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "deedgate:v1:" + hex.EncodeToString(hash[:])
}
