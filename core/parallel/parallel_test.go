package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryItemOnce(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		threshold int
	}{
		{"empty", 0, DefaultThreshold},
		{"single", 1, DefaultThreshold},
		{"below threshold", 999, DefaultThreshold},
		{"above threshold", 5003, DefaultThreshold},
		{"zero threshold", 17, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int, tt.items)
			ParallelizeWithThreshold(tt.items, tt.threshold, func(start, end int) {
				for i := start; i < end; i++ {
					hits[i]++
				}
			})
			for i, h := range hits {
				assert.Equal(t, 1, h, "item %d", i)
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var mu sync.Mutex
	var calls [][2]int
	ParallelizeWithThreshold(10, DefaultThreshold, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]int{start, end})
	})
	assert.Equal(t, [][2]int{{0, 10}}, calls)
}

func BenchmarkParallelize(b *testing.B) {
	data := make([]float64, 100000)
	for i := 0; i < b.N; i++ {
		Parallelize(len(data), func(start, end int) {
			for j := start; j < end; j++ {
				data[j] = float64(j) * 2
			}
		})
	}
}
