package random

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(42), New(42)

	assert.Equal(t, a.Permutation(10), b.Permutation(10))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Index(7), b.Index(7))
		assert.Equal(t, a.Uniform(-1, 1), b.Uniform(-1, 1))
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)
	assert.NotEqual(t, a.Permutation(20), b.Permutation(20))
}

func TestOrder(t *testing.T) {
	s := New(7)
	assert.Equal(t, []int{0, 1, 2, 3}, s.Order(4, false))

	// identity orders must not advance the stream
	ref := New(7)
	assert.Equal(t, ref.Permutation(8), s.Order(8, true))

	perm := s.Order(50, true)
	sorted := append([]int(nil), perm...)
	sort.Ints(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v)
	}
}

func TestUniformRange(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(-1, 1)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}

	buf := make([]float64, 100)
	s.FillUniform(buf, 2, 3)
	for _, v := range buf {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestIndexRange(t *testing.T) {
	s := New(11)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		k := s.Index(4)
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, 4)
		seen[k] = true
	}
	assert.Len(t, seen, 4)
}

func TestNewEntropyReplays(t *testing.T) {
	s := NewEntropy()
	replay := New(s.Seed())
	assert.Equal(t, replay.Permutation(16), s.Permutation(16))
}
