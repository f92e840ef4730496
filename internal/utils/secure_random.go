package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const stateNonceBytes = 16

// NewStateNonce returns a random URL-safe nonce for the Exact Online OAuth state.
func NewStateNonce() (string, error) {
	b := make([]byte, stateNonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
