// Package random provides the explicitly seeded pseudo-random sequence owned
// by every trainer. No package-level generator is used: two trainers built
// with the same seed and fed the same data produce identical weights.
package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sequence is a PCG stream. It is not safe for concurrent use.
type Sequence struct {
	seed uint64
	src  *rand.PCG
	rng  *rand.Rand
}

// New returns a sequence whose whole stream is a function of seed.
func New(seed uint64) *Sequence {
	src := rand.NewPCG(seed, seed)
	return &Sequence{seed: seed, src: src, rng: rand.New(src)}
}

// NewEntropy returns a sequence seeded from the runtime's random source.
// Seed reports the value drawn so a run can be replayed.
func NewEntropy() *Sequence {
	return New(rand.Uint64())
}

// Seed returns the seed the sequence was created with.
func (s *Sequence) Seed() uint64 {
	return s.seed
}

// Order returns the sample visitation order for one epoch: the identity when
// shuffle is false (the stream is not advanced), otherwise a permutation.
func (s *Sequence) Order(n int, shuffle bool) []int {
	if !shuffle {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}
	return s.Permutation(n)
}

// Permutation returns a uniformly random permutation of [0, n).
func (s *Sequence) Permutation(n int) []int {
	return s.rng.Perm(n)
}

// Index returns a uniform draw from [0, n). It panics if n <= 0.
func (s *Sequence) Index(n int) int {
	return s.rng.IntN(n)
}

// Float64 returns a uniform draw from [0, 1).
func (s *Sequence) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform draw from [min, max).
func (s *Sequence) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// FillUniform overwrites dst with independent draws from [min, max).
func (s *Sequence) FillUniform(dst []float64, min, max float64) {
	dist := distuv.Uniform{Min: min, Max: max, Src: s.src}
	for i := range dst {
		dst[i] = dist.Rand()
	}
}
