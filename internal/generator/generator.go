// Package generator picks practice words and spoken phrases.
package generator

import (
	"math/rand"
	"time"
)

// Generator makes uniform random picks. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func (g *Generator) Pick(items []string) string {
	return items[g.rnd.Intn(len(items))]
}
