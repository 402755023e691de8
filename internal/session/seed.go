package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Seed returns a deterministic random seed for a session using HMAC(secret, id).
// The same secret and id always replay the same shuffles and hints.
func Seed(secret, id string) int64 {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// first 8 bytes as the seed
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// NewRand returns a random source seeded for the session.
func NewRand(secret, id string) *rand.Rand {
	return rand.New(rand.NewSource(Seed(secret, id)))
}
