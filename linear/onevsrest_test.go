package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

func threeClusters() (*mat.Dense, *mat.Dense, []float64) {
	points := [][]float64{
		{0, 3}, {0.5, 3.5}, {-0.5, 2.5}, {0.2, 3.1},
		{-3, -2}, {-3.5, -2.5}, {-2.5, -1.5}, {-3.1, -2.2},
		{3, -2}, {3.5, -2.5}, {2.5, -1.5}, {3.1, -1.8},
	}
	X := mat.NewDense(len(points), 2, nil)
	Y := mat.NewDense(len(points), 3, nil)
	classes := make([]float64, len(points))
	for i, p := range points {
		X.SetRow(i, p)
		class := i / 4
		classes[i] = float64(class)
		for c := 0; c < 3; c++ {
			if c == class {
				Y.Set(i, c, 1)
			} else {
				Y.Set(i, c, -1)
			}
		}
	}
	return X, Y, classes
}

func TestOneVsRest(t *testing.T) {
	captureWarnings(t)
	X, Y, classes := threeClusters()

	ovr := NewOneVsRest(WithSeed(10))
	histories, err := ovr.FitWithHistory(X, Y)
	require.NoError(t, err)

	require.Len(t, histories, 3)
	for c, h := range histories {
		assert.Equal(t, 0, h[len(h)-1], "class %d should converge", c)
	}
	assert.Equal(t, 3, ovr.NClasses())

	pred, err := ovr.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, classes, mat.Col(nil, 0, pred))

	scores, err := ovr.DecisionFunction(X)
	require.NoError(t, err)
	r, c := scores.Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 3, c)
}

func TestOneVsRestSeedsPerClass(t *testing.T) {
	captureWarnings(t)
	X, Y, _ := threeClusters()

	ovr := NewOneVsRest(WithSeed(10))
	require.NoError(t, ovr.Fit(X, Y))

	// class 1 is trained exactly like a standalone perceptron seeded with 11
	single := NewPerceptron(WithSeed(11))
	require.NoError(t, single.Fit(X, mat.NewDense(12, 1, mat.Col(nil, 1, Y))))
	assert.Equal(t, single.WeightsWithBias(), ovr.Models()[1].WeightsWithBias())
}

func TestOneVsRestErrors(t *testing.T) {
	X, Y, _ := threeClusters()

	ovr := NewOneVsRest()
	_, err := ovr.Predict(X)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	err = ovr.Fit(X, mat.NewDense(3, 3, nil))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))

	err = NewOneVsRest(WithMaxEpochs(-1)).Fit(X, Y)
	var v *errors.ValidationError
	assert.True(t, errors.As(err, &v))
}
