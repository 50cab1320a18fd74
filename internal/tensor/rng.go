package tensor

import "math"

// RNG is a Mulberry32 pseudo-random generator.
//
// The 32-bit state update is fully deterministic: the same seed produces
// the same sequence on every platform and every run. This is the
// reproducibility contract the whole framework relies on when comparing
// learners on identical initial conditions, so all randomness (weight
// init, feedback matrices, synthetic data) flows through RNG rather than
// math/rand.
type RNG struct {
	state      uint32
	spare      float64
	spareValid bool
}

// NewRNG creates a generator seeded with the given 32-bit seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Uint32 advances the state and returns the next 32-bit value.
func (r *RNG) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value uniformly distributed in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// NormPair returns two independent standard-normal values via the
// Box-Muller transform, consuming exactly two uniform draws.
func (r *RNG) NormPair() (float64, float64) {
	u1 := r.Float64()
	u2 := r.Float64()
	rad := math.Sqrt(-2.0 * math.Log(u1))
	z0 := rad * math.Cos(2.0*math.Pi*u2)
	z1 := rad * math.Sin(2.0*math.Pi*u2)
	return z0, z1
}

// NormFloat64 returns a single standard-normal value. The second value of
// each Box-Muller pair is cached, so draws stay aligned with NormPair.
func (r *RNG) NormFloat64() float64 {
	if r.spareValid {
		r.spareValid = false
		return r.spare
	}
	z0, z1 := r.NormPair()
	r.spare = z1
	r.spareValid = true
	return z0
}
