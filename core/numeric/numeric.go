// Package numeric provides the vector primitives shared by the linear models
// and the MLP engine. All functions are pure except Axpy, which updates its
// destination in place.
package numeric

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/parallel"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Dot returns Σ a[i]*b[i].
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("numeric.Dot", len(a), len(b), 0)
	}
	return floats.Dot(a, b), nil
}

// Axpy performs y[i] += alpha*x[i] in place.
func Axpy(alpha float64, x, y []float64) error {
	if len(x) != len(y) {
		return errors.NewDimensionError("numeric.Axpy", len(y), len(x), 0)
	}
	floats.AddScaled(y, alpha, x)
	return nil
}

// AddBiasColumn returns a new matrix whose rows are the rows of X prefixed
// with 1.0. X is not modified.
func AddBiasColumn(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	if r == 0 {
		return &mat.Dense{}
	}

	out := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := out.RawRowView(i)
			row[0] = 1.0
			mat.Row(row[1:], i, X)
		}
	})
	return out
}

// MeanSquaredError returns (1/n) Σ (yTrue[i] - yPred[i])².
func MeanSquaredError(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, errors.NewDimensionError("numeric.MeanSquaredError", len(yTrue), len(yPred), 0)
	}
	if len(yTrue) == 0 {
		return 0, errors.NewEmptyDataError("numeric.MeanSquaredError")
	}

	diff := make([]float64, len(yTrue))
	floats.SubTo(diff, yTrue, yPred)
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// Argmax returns the index of the first largest element, or 0 for an empty
// slice.
func Argmax(v []float64) int {
	if len(v) == 0 {
		return 0
	}
	return floats.MaxIdx(v)
}
