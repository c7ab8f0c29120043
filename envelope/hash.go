package envelope

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the length of a content hash in bytes.
const HashSize = sha256.Size

// ContentHash returns the lower-case hex SHA-256 digest of b.
func ContentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
