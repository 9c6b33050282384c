package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// GenerateETag builds a quoted, deterministic entity tag from the parts
// that make a response body change.
func GenerateETag(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
