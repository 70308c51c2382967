package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that learns from a sample matrix and its targets.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor maps a sample matrix to predictions, one row per sample.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is a supervised model.
type Estimator interface {
	Fitter
	Predictor
	IsFitted() bool
}

// LinearModel exposes a bias-first weight vector and raw activations.
type LinearModel interface {
	Estimator
	// WeightsWithBias returns a copy of [bias, w1, ..., wd].
	WeightsWithBias() []float64
	// DecisionFunction returns w·[1, x] for every row of X.
	DecisionFunction(X mat.Matrix) (*mat.VecDense, error)
}
