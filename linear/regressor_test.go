package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// lineData samples y = slope*x + intercept on x = -1.0, -0.9, ..., 1.0.
func lineData(slope, intercept float64) (*mat.Dense, *mat.Dense) {
	const n = 21
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -1 + 0.1*float64(i)
		X.Set(i, 0, x)
		y.Set(i, 0, slope*x+intercept)
	}
	return X, y
}

func TestLinearRegressorLearnsLine(t *testing.T) {
	X, y := lineData(2, 0)

	r := NewLinearRegressor()
	history, err := r.FitWithHistory(X, y)
	require.NoError(t, err)

	assert.Len(t, history, 1000)
	assert.Less(t, history[len(history)-1], 1e-3)
	assert.Less(t, history[len(history)-1], history[0])

	w := r.WeightsWithBias()
	require.Len(t, w, 2)
	assert.InDelta(t, 0, w[0], 1e-2)
	assert.InDelta(t, 2, w[1], 1e-2)

	pred, err := r.PredictOne([]float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pred, 1e-2)

	r2, err := r.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, r2, 0.99)
}

func TestLinearRegressorSingleUpdate(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{1})
	y := mat.NewDense(1, 1, []float64{2})

	r := NewLinearRegressor(WithLearningRate(0.5), WithMaxEpochs(2), WithShuffle(false))
	history, err := r.FitWithHistory(X, y)
	require.NoError(t, err)

	// epoch 1: prediction 0, error 2, w += 0.5*2*[1, 1]
	assert.Equal(t, []float64{1, 1}, r.WeightsWithBias())
	assert.Equal(t, []float64{0, 0}, history)
}

func TestLinearRegressorPredictMatchesPredictOne(t *testing.T) {
	X, y := lineData(-1.5, 0.25)
	r := NewLinearRegressor(WithMaxEpochs(200), WithSeed(3))
	require.NoError(t, r.Fit(X, y))

	pred, err := r.Predict(X)
	require.NoError(t, err)
	rows, cols := pred.Dims()
	require.Equal(t, 21, rows)
	require.Equal(t, 1, cols)

	for i := 0; i < rows; i++ {
		one, err := r.PredictOne([]float64{X.At(i, 0)})
		require.NoError(t, err)
		assert.Equal(t, one, pred.At(i, 0))
	}
}

func TestLinearRegressorDeterministic(t *testing.T) {
	X, y := lineData(3, -1)

	a := NewLinearRegressor(WithMaxEpochs(50), WithSeed(99))
	b := NewLinearRegressor(WithMaxEpochs(50), WithSeed(99))
	ha, err := a.FitWithHistory(X, y)
	require.NoError(t, err)
	hb, err := b.FitWithHistory(X, y)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Equal(t, a.WeightsWithBias(), b.WeightsWithBias())
}

func TestLinearRegressorErrors(t *testing.T) {
	X, y := lineData(1, 0)

	err := NewLinearRegressor(WithLearningRate(-0.1)).Fit(X, y)
	var v *errors.ValidationError
	assert.True(t, errors.As(err, &v))

	err = NewLinearRegressor().Fit(X, mat.NewDense(2, 1, nil))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))

	err = NewLinearRegressor().Fit(&mat.Dense{}, &mat.Dense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	r := NewLinearRegressor()
	_, err = r.Predict(X)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	require.NoError(t, r.Fit(X, y))
	_, err = r.Predict(mat.NewDense(2, 2, nil))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
}

func TestLinearRegressorLargeBatchPredict(t *testing.T) {
	X, y := lineData(2, 1)
	r := NewLinearRegressor()
	require.NoError(t, r.Fit(X, y))

	const n = 3000
	big := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		big.Set(i, 0, float64(i%7)/7)
	}
	pred, err := r.Predict(big)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		one, err := r.PredictOne([]float64{big.At(i, 0)})
		require.NoError(t, err)
		require.Equal(t, one, pred.At(i, 0))
	}
}
