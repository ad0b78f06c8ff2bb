package game

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand is the source of uniform draws in [0, 1) used by the simulation
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. Seed 0 picks a seed from the wall clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Chance draws once and reports whether the draw fell below p
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Centered draws a value uniformly in [-span/2, span/2)
func Centered(r Rand, span float64) float64 {
	return (r.Float64() - 0.5) * span
}

// RandomAngle draws a direction uniformly in [0, 2π)
func RandomAngle(r Rand) float64 {
	return r.Float64() * 2 * math.Pi
}
