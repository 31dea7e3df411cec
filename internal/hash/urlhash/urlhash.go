// Package urlhash derives stable on-disk names from URL strings.
package urlhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// HexLen is the length of the truncated digest.
//
// 64 bits is enough at corpus scale (hundreds of URLs): the birthday-bound
// collision probability is far below anything the filesystem will ever see,
// and the short names keep archive paths readable.
const HexLen = 16

// Hash returns the first 16 lowercase hex characters of the SHA-256 digest
// of the exact URL string. The result is the archive filename stem and the
// dedup key for storage paths, so it must stay stable across runs.
func Hash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:HexLen]
}
