package dynamic

import (
	"crypto/sha256"
	"encoding/hex"
)

// CanonicalHash returns a stable content hash of a value. Record field
// order and set element order do not affect the hash, so structurally
// equal values always hash equal.
func CanonicalHash(v *Value) string {
	sum := sha256.Sum256([]byte(v.canonicalString()))
	return hex.EncodeToString(sum[:16])
}
