// Package metrics scores predictions made by mlkit models.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// MSE is the mean squared error (1/n) Σ (yTrue - yPred)².
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkVectors("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	return numeric.MeanSquaredError(vecData(yTrue), vecData(yPred))
}

// MSEMatrix computes MSE for n×1 matrices such as the output of Predict.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE is the square root of MSE.
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE is the mean absolute error (1/n) Σ |yTrue - yPred|.
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkVectors("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	n := yTrue.Len()
	return floats.Distance(vecData(yTrue), vecData(yPred), 1) / float64(n), nil
}

// R2Score is the coefficient of determination 1 - RSS/TSS.
// It fails when yTrue has no variance.
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkVectors("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	t, p := vecData(yTrue), vecData(yPred)
	mean := floats.Sum(t) / float64(len(t))

	var tss, rss float64
	for i := range t {
		tss += (t[i] - mean) * (t[i] - mean)
		rss += (t[i] - p[i]) * (t[i] - p[i])
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

func checkVectors(op string, yTrue, yPred mat.Vector) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewEmptyDataError(op)
	}
	if yPred.Len() != n {
		return errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return nil
}

func columnPair(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 {
		return nil, nil, errors.NewEmptyDataError(op)
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue)), mat.NewVecDense(rPred, mat.Col(nil, 0, yPred)), nil
}

func vecData(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
