package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// oauthStateBytes gives a 22 character state value.
const oauthStateBytes = 16

// NewOAuthState returns a random URL-safe value for the OAuth state parameter.
func NewOAuthState() (string, error) {
	b := make([]byte, oauthStateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
