// Package utils provides utility functions for the application.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortHashLength is the number of hex characters kept from the digest.
// Long enough to keep generated import identifiers distinct in practice.
const shortHashLength = 10

// ShortHash returns a short stable identifier derived from s.
// Deterministic across processes, so generated identifiers are reproducible
// between builds.
func ShortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:shortHashLength]
}
