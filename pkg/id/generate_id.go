package id

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// DeriveID returns a deterministic 32-char hex identifier from the given
// seeds. Same seeds, same id: loan addresses are derived from
// (collateral id, platform id) so a collateral unit can back at most one
// active loan per platform.
func DeriveID(seeds ...string) string {
	h := sha256.New()
	for _, s := range seeds {
		h.Write([]byte(s))
		h.Write([]byte{0}) // separator keeps ("ab","c") != ("a","bc")
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
