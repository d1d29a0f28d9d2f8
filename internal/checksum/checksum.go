// Package checksum fingerprints log files for import journaling.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortLen is how many hex digits of a digest appear in log lines.
const shortLen = 12

// Sum returns the hex-encoded SHA-256 digest of data. The full digest is
// what the import journal stores and matches on.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short truncates a digest for log lines; journal lookups always use the
// full form.
func Short(sum string) string {
	if len(sum) <= shortLen {
		return sum
	}
	return sum[:shortLen]
}
