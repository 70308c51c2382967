package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

func orData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{-1, 1, 1, 1})
	return X, y
}

func xorData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{-1, 1, 1, -1})
	return X, y
}

// captureWarnings collects warnings emitted during the test.
func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var got []error
	errors.SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return &got
}

func TestPerceptronConvergesOnOR(t *testing.T) {
	warnings := captureWarnings(t)
	X, y := orData()

	p := NewPerceptron(WithLearningRate(1.0), WithMaxEpochs(50), WithSeed(123))
	history, err := p.FitWithHistory(X, y)
	require.NoError(t, err)

	require.NotEmpty(t, history)
	assert.Equal(t, 0, history[len(history)-1])
	for _, m := range history[:len(history)-1] {
		assert.Greater(t, m, 0, "only the last epoch may be mistake-free")
	}
	assert.True(t, p.Converged())
	assert.Equal(t, len(history), p.NEpochs())
	assert.Empty(t, *warnings)

	pred, err := p.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(y, pred))

	acc, err := p.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
}

func TestPerceptronFixedOrderTrace(t *testing.T) {
	X, y := orData()

	p := NewPerceptron(WithShuffle(false))
	history, err := p.FitWithHistory(X, y)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1, 0}, history)
	assert.Equal(t, []float64{-1, 1, 1}, p.WeightsWithBias())
}

func TestPerceptronXORNeverConverges(t *testing.T) {
	warnings := captureWarnings(t)
	X, y := xorData()

	p := NewPerceptron(WithMaxEpochs(25))
	history, err := p.FitWithHistory(X, y)
	require.NoError(t, err)

	assert.Len(t, history, 25)
	for _, m := range history {
		assert.Greater(t, m, 0)
	}
	assert.False(t, p.Converged())
	require.Len(t, *warnings, 1)

	var cw *errors.ConvergenceWarning
	require.True(t, errors.As((*warnings)[0], &cw))
	assert.Equal(t, 25, cw.Iterations)
}

func TestPerceptronDeterministic(t *testing.T) {
	X, y := xorData()

	a := NewPerceptron(WithMaxEpochs(30), WithSeed(7))
	b := NewPerceptron(WithMaxEpochs(30), WithSeed(7))
	captureWarnings(t)

	ha, err := a.FitWithHistory(X, y)
	require.NoError(t, err)
	hb, err := b.FitWithHistory(X, y)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Equal(t, a.WeightsWithBias(), b.WeightsWithBias())

	// refitting starts from zero weights and the same seed
	require.NoError(t, a.Fit(X, y))
	assert.Equal(t, b.WeightsWithBias(), a.WeightsWithBias())
}

func TestPerceptronErrors(t *testing.T) {
	X, y := orData()

	tests := []struct {
		name  string
		opts  []Option
		X, y  mat.Matrix
		check func(t *testing.T, err error)
	}{
		{
			name: "zero learning rate",
			opts: []Option{WithLearningRate(0)},
			X:    X, y: y,
			check: func(t *testing.T, err error) {
				var v *errors.ValidationError
				assert.True(t, errors.As(err, &v))
			},
		},
		{
			name: "zero epochs",
			opts: []Option{WithMaxEpochs(0)},
			X:    X, y: y,
			check: func(t *testing.T, err error) {
				var v *errors.ValidationError
				assert.True(t, errors.As(err, &v))
			},
		},
		{
			name: "empty input",
			X:    &mat.Dense{}, y: &mat.Dense{},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrEmptyData))
			},
		},
		{
			name: "label count mismatch",
			X:    X, y: mat.NewDense(3, 1, []float64{1, 1, 1}),
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
			},
		},
		{
			name: "labels not a column",
			X:    X, y: mat.NewDense(4, 2, nil),
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPerceptron(tt.opts...)
			err := p.Fit(tt.X, tt.y)
			require.Error(t, err)
			tt.check(t, err)
			assert.False(t, p.IsFitted())
			assert.Nil(t, p.WeightsWithBias())
		})
	}
}

func TestPerceptronPredictErrors(t *testing.T) {
	X, y := orData()
	p := NewPerceptron()

	_, err := p.Predict(X)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = p.PredictOne([]float64{0, 1})
	assert.True(t, errors.As(err, &notFitted))

	require.NoError(t, p.Fit(X, y))

	_, err = p.Predict(mat.NewDense(1, 3, nil))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))

	_, err = p.PredictOne([]float64{1})
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))

	got, err := p.PredictOne([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	scores, err := p.DecisionFunction(X)
	require.NoError(t, err)
	assert.Equal(t, 4, scores.Len())
	assert.Less(t, scores.AtVec(0), 0.0)
}

func TestPerceptronLogging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	X, y := orData()

	p := NewPerceptron(WithLogger(logger), WithShuffle(false))
	require.NoError(t, p.Fit(X, y))

	assert.Len(t, logger.EntriesWithMessage("Epoch completed"), 4)
	assert.True(t, logger.ContainsField(log.ConvergedKey, true))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "Perceptron"))
}

func BenchmarkPerceptronFit(b *testing.B) {
	X, y := orData()
	p := NewPerceptron()
	for i := 0; i < b.N; i++ {
		_ = p.Fit(X, y)
	}
}
