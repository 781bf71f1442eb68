package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeCursor creates a base64 encoded token pointing just past the given transaction.
// The timestamp lets paging resume when that transaction has since been deleted.
func EncodeCursor(txID string, timestamp time.Time) string {
	return EncodeMultiFieldToken(txID, timestamp.Format(timeFormat))
}

// DecodeCursor parses a token created by EncodeCursor.
func DecodeCursor(token string) (string, time.Time, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", time.Time{}, err
	}
	if len(parts) != 2 || parts[0] == "" {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	ts, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return parts[0], ts, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
