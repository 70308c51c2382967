package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Accuracy is the fraction of rows where the ±1 prediction has the same sign
// as the label. Both arguments are n×1.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < t.Len(); i++ {
		if (t.AtVec(i) >= 0) == (p.AtVec(i) >= 0) {
			correct++
		}
	}
	return float64(correct) / float64(t.Len()), nil
}

// MisclassificationRate is 1 - Accuracy.
func MisclassificationRate(yTrue, yPred mat.Matrix) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// OneHotAccuracy compares the argmax column of every row of yTrue and yPred.
// Ties resolve to the lowest column index.
func OneHotAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 {
		return 0, errors.NewEmptyDataError("OneHotAccuracy")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("OneHotAccuracy", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("OneHotAccuracy", cTrue, cPred, 1)
	}

	tRow := make([]float64, cTrue)
	pRow := make([]float64, cPred)
	correct := 0
	for i := 0; i < rTrue; i++ {
		mat.Row(tRow, i, yTrue)
		mat.Row(pRow, i, yPred)
		if numeric.Argmax(tRow) == numeric.Argmax(pRow) {
			correct++
		}
	}
	return float64(correct) / float64(rTrue), nil
}

// ClassAccuracy compares integer class indices stored in two n×1 matrices,
// as returned by the one-vs-rest classifier.
func ClassAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("ClassAccuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < t.Len(); i++ {
		if t.AtVec(i) == p.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(t.Len()), nil
}
