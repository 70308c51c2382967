// Package linear implements the single-layer learners: the binary
// perceptron, the delta-rule linear regressor and a one-vs-rest wrapper that
// turns perceptrons into a multi-class classifier.
//
// Every model keeps a bias-first weight vector [bias, w1, ..., wd], re-zeroes
// it at the start of each Fit and draws its sample order from a sequence
// seeded with WithSeed, so two models with the same options and data end up
// with bit-identical weights.
package linear

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/core/parallel"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

var (
	_ model.LinearModel = (*Perceptron)(nil)
	_ model.LinearModel = (*LinearRegressor)(nil)
	_ model.Estimator   = (*OneVsRest)(nil)
)

// prepare validates a training set and returns its bias-augmented sample
// matrix and target column.
func prepare(op string, X, y mat.Matrix) (*mat.Dense, []float64, error) {
	r, _ := X.Dims()
	ry, cy := y.Dims()

	if r == 0 {
		return nil, nil, errors.NewEmptyDataError(op)
	}
	if ry != r {
		return nil, nil, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return nil, nil, errors.NewDimensionError(op, 1, cy, 1)
	}

	return numeric.AddBiasColumn(X), mat.Col(nil, 0, y), nil
}

// activations returns weights·[1, x] for every row of X.
func activations(weights []float64, X mat.Matrix) *mat.VecDense {
	r, c := X.Dims()
	out := make([]float64, r)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		row := make([]float64, c+1)
		row[0] = 1
		for i := start; i < end; i++ {
			mat.Row(row[1:], i, X)
			out[i] = floats.Dot(weights, row)
		}
	})
	return mat.NewVecDense(r, out)
}

// withBias returns [1, x].
func withBias(x []float64) []float64 {
	row := make([]float64, len(x)+1)
	row[0] = 1
	copy(row[1:], x)
	return row
}

// sign maps an activation to a ±1 label. Zero counts as positive.
func sign(activation float64) float64 {
	if activation >= 0 {
		return 1
	}
	return -1
}
