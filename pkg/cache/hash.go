package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Stamp identifies the state of one shrinker input without reading it.
type Stamp struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Missing bool      `json:"missing,omitempty"`
}

// StagingKey returns the cache key of a staging jar built from directives
// over inputs. Any change to a directive, or to the size or modification
// time of an input, yields a different key.
func StagingKey(directives []string, inputs []Stamp) string {
	normalized := make([]Stamp, len(inputs))
	for i, s := range inputs {
		s.ModTime = s.ModTime.UTC()
		normalized[i] = s
	}
	return hashKey("staging", directives, normalized)
}
