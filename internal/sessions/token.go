package sessions

import (
	"crypto/rand"
	"encoding/base64"
)

// NewToken generates a random URL-safe token with the given prefix
func NewToken(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
