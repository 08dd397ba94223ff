package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Generate returns an opaque URL-safe token for approval links.
func Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
