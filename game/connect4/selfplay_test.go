package connect4

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

func TestSelfPlayRecordsLegalPositions(t *testing.T) {
	cfg := SelfPlayConfig{Games: 20, CentreBias: 0.35, Seed: 42}

	var samples []Sample
	require.NoError(t, SelfPlay(cfg, func(s Sample) error {
		samples = append(samples, s)
		return nil
	}))
	require.NotEmpty(t, samples)

	// every game starts from the empty board with X to move
	var starts int
	for _, s := range samples {
		require.Len(t, s.Input, EncodedLen)
		assert.GreaterOrEqual(t, s.Column, 0)
		assert.Less(t, s.Column, Cols)
		if s.Input[BoardValues+int(X)] == 1 && isEmptyBoard(s.Input) {
			starts++
		}
	}
	assert.Equal(t, cfg.Games, starts)
}

func isEmptyBoard(v []float64) bool {
	for i := 0; i < BoardValues; i += CellChannels {
		if v[i] != 1 {
			return false
		}
	}
	return true
}

func TestSelfPlayDeterministic(t *testing.T) {
	cfg := SelfPlayConfig{Games: 10, CentreBias: 0.35, Seed: 7}

	var a, b bytes.Buffer
	n1, err := WriteDataset(&a, cfg)
	require.NoError(t, err)
	n2, err := WriteDataset(&b, cfg)
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
	assert.Equal(t, a.String(), b.String())
}

func TestSelfPlayCentreBias(t *testing.T) {
	count := func(bias float64) int {
		var centreMoves int
		require.NoError(t, SelfPlay(SelfPlayConfig{Games: 200, CentreBias: bias, Seed: 1}, func(s Sample) error {
			if s.Column == centre {
				centreMoves++
			}
			return nil
		}))
		return centreMoves
	}
	assert.Greater(t, count(0.9), count(0))
}

func TestSelfPlayValidation(t *testing.T) {
	var valErr *errors.ValidationError
	err := SelfPlay(SelfPlayConfig{Games: 0, CentreBias: 0.35}, func(Sample) error { return nil })
	assert.True(t, errors.As(err, &valErr))

	err = SelfPlay(SelfPlayConfig{Games: 1, CentreBias: 1.5}, func(Sample) error { return nil })
	assert.True(t, errors.As(err, &valErr))
}

func TestChooseMoveFallsBackWhenCentreFull(t *testing.T) {
	seq := random.New(3)
	for i := 0; i < 100; i++ {
		col := chooseMove(seq, []int{0, 6}, 1)
		assert.Contains(t, []int{0, 6}, col)
	}
	assert.Equal(t, centre, chooseMove(seq, []int{0, centre, 6}, 1))
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	cfg := SelfPlayConfig{Games: 5, CentreBias: 0.35, Seed: 42}

	var samples []Sample
	require.NoError(t, SelfPlay(cfg, func(s Sample) error {
		samples = append(samples, s)
		return nil
	}))

	path := filepath.Join(t.TempDir(), "dataset.csv")
	n, err := WriteDatasetFile(path, cfg)
	require.NoError(t, err)
	require.Equal(t, len(samples), n)

	X, Y, err := dataset.LoadConnect4File(path)
	require.NoError(t, err)

	r, c := X.Dims()
	require.Equal(t, n, r)
	require.Equal(t, dataset.InputDim, c)
	for i, s := range samples {
		for j, v := range s.Input {
			require.Equal(t, v, X.At(i, j), "sample %d value %d", i, j)
		}
		assert.Equal(t, 1.0, Y.At(i, s.Column))
	}
}
