package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// idPattern matches a full 24-character hexadecimal identifier, the
// format used for restaurant and reservation IDs throughout the API.
var idPattern = regexp.MustCompile(`^[0-9A-Fa-f]{24}$`)

// IsValidID reports whether id is a well-formed 24-character hex
// identifier.  A well-formed id may still refer to no stored record;
// lookups handle that case separately.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewID returns a fresh 24-character hexadecimal identifier built
// from 12 bytes of cryptographically secure random data.
func NewID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
