package rng

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// New returns a seeded generator for a positive seed, otherwise a crypto backed one
func New(seed int64) Generator {
	if seed > 0 {
		return Seeded(seed)
	}

	return Crypto{}
}

// Seeded returns a reproducible generator
// This should be used by tests and replays only
func Seeded(seed int64) Generator {
	return mathrand.New(mathrand.NewSource(seed)) // nolint:gosec
}

// Crypto draws from crypto/rand
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// Chance returns true with the given probability, expressed in percent
func Chance(g Generator, percent int) bool {
	if percent <= 0 {
		return false
	}

	return g.Intn(100) < percent
}
