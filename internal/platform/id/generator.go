// Package id generates opaque identifiers. Each CLI run tags its log stream
// with one so interleaved runs can be told apart in the trace backend.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewID returns 32 hex characters of cryptographic randomness.
func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
