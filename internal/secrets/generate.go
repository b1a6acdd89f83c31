// Package secrets generates random values for use in .env files.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Token generates a random alphanumeric string of the given length.
func Token(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("crypto/rand failed: %w", err)
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

// Hex generates a random hex string of the given byte count (2n characters).
func Hex(bytes int) (string, error) {
	if bytes <= 0 {
		return "", fmt.Errorf("byte count must be positive, got %d", bytes)
	}
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("crypto/rand failed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
