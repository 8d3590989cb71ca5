// Package id generates prefixed identifiers for seeded rows.
package id

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for seeded entities.
const (
	PrefixBook  = "book"
	PrefixGenre = "genre"
	PrefixTrope = "trope"
)

// Generator produces unique IDs for a prefix.
type Generator interface {
	Generate(prefix string) (string, error)
}

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT")
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NanoID is the default Generator backed by Generate.
type NanoID struct{}

// Generate implements Generator.
func (NanoID) Generate(prefix string) (string, error) {
	return Generate(prefix)
}

// Sequence is a Generator that yields prefix-1, prefix-2, ... per prefix.
// It is safe for concurrent use and keeps tests readable.
type Sequence struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{next: make(map[string]int)}
}

// Generate implements Generator.
func (s *Sequence) Generate(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.next[prefix]), nil
}
