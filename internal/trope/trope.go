// Package trope generates random story tropes for seeding.
package trope

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/listenupapp/listenup-seed/internal/domain"
	"github.com/listenupapp/listenup-seed/internal/id"
)

// wordsPerTrope is the number of lorem words in a trope.
const wordsPerTrope = 3

// Generator creates tropes with random lorem text.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	ids   id.Generator
}

// NewGenerator creates a Generator. A seed of 0 picks a random seed.
func NewGenerator(seed uint64, ids id.Generator) *Generator {
	if ids == nil {
		ids = id.NanoID{}
	}
	return &Generator{
		faker: gofakeit.New(seed),
		ids:   ids,
	}
}

// Create returns one trope.
func (g *Generator) Create() (*domain.Trope, error) {
	tropeID, err := g.ids.Generate(id.PrefixTrope)
	if err != nil {
		return nil, err
	}
	return &domain.Trope{ID: tropeID, Text: g.text()}, nil
}

// CreateN returns n tropes.
func (g *Generator) CreateN(n int) ([]*domain.Trope, error) {
	tropes := make([]*domain.Trope, 0, max(n, 0))
	for range n {
		t, err := g.Create()
		if err != nil {
			return nil, err
		}
		tropes = append(tropes, t)
	}
	return tropes, nil
}

func (g *Generator) text() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	words := make([]string, wordsPerTrope)
	for i := range words {
		words[i] = g.faker.LoremIpsumWord()
	}
	return strings.Join(words, " ")
}
