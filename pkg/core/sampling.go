package core

import (
	"math"
	"math/rand"
)

// Sampler provides uniform random numbers in [0, 1)
// Can be swapped out for deterministic testing
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RandomSampler wraps a seeded Go random generator that can be rewound to its seed
type RandomSampler struct {
	seed   int64
	random *rand.Rand
}

// NewRandomSampler creates a sampler with its own generator
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{seed: seed, random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// Uniform returns a value in [lo, hi). It consumes exactly one draw, also when
// lo == hi, so the stream advances the same way for fixed values.
func (r *RandomSampler) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.random.Float64()
}

// Seed returns the seed the sampler was created with
func (r *RandomSampler) Seed() int64 {
	return r.seed
}

// Reset rewinds the generator so it replays the same sequence
func (r *RandomSampler) Reset() {
	r.random.Seed(r.seed)
}

// SamplePointInDisk maps two uniform samples to a point uniformly distributed
// on a disk of the given radius around the origin of the XY plane
func SamplePointInDisk(u1, u2, radius float64) Vec3 {
	// r = √u keeps the density uniform in area
	theta := 2 * math.Pi * u1
	r := math.Sqrt(u2) * radius
	sin, cos := math.Sincos(theta)
	return NewVec3(r*cos, r*sin, 0)
}
