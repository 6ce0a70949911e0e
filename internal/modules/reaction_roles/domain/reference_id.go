package domain

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// DefaultReferenceIDLength is the length of generated reference IDs.
const DefaultReferenceIDLength = 4

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ReferenceIDGenerator produces short random IDs that moderators use to refer
// to a reaction role. It is safe for concurrent use.
type ReferenceIDGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	length int
}

// NewReferenceIDGenerator creates a generator drawing from src.
// A nil src uses a randomly seeded source; a non-positive length uses DefaultReferenceIDLength.
func NewReferenceIDGenerator(src rand.Source, length int) *ReferenceIDGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if length <= 0 {
		length = DefaultReferenceIDLength
	}
	return &ReferenceIDGenerator{
		rng:    rand.New(src),
		length: length,
	}
}

// Next returns a new reference ID.
func (g *ReferenceIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(g.length)
	for range g.length {
		b.WriteByte(referenceAlphabet[g.rng.IntN(len(referenceAlphabet))])
	}
	return b.String()
}
