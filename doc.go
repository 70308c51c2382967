// Package mlkit is a small from-scratch machine learning toolkit: a binary
// perceptron, a linear regressor trained by the delta rule and a
// fully-connected multi-layer perceptron trained by backpropagation, all on
// gonum dense matrices.
//
// # Quick Start
//
//	X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
//	y := mat.NewDense(4, 1, []float64{-1, 1, 1, 1})
//
//	p := linear.NewPerceptron(linear.WithLearningRate(1), linear.WithMaxEpochs(100))
//	history, err := p.FitWithHistory(X, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(history, p.WeightsWithBias())
//
// An MLP is built from its layer widths, input first:
//
//	m, err := neural.NewMLP([]int{2, 3, 1}, neural.WithSeed(42))
//	err = m.Train(X, y, neural.Classification, 100_000, 0.1)
//	out, err := m.Predict([]float64{1, 0}, neural.Classification)
//
// # Packages
//
//   - core/numeric: dot product, axpy, bias augmentation, mean squared error
//   - core/random: explicitly seeded random sequences owned by trainers
//   - core/model: estimator interfaces and fitted-state bookkeeping
//   - core/parallel: row-parallel helpers for large inputs
//   - linear: Perceptron, LinearRegressor and one-vs-rest classification
//   - neural: the MLP engine
//   - metrics: regression and classification scores
//   - dataset: matrix helpers, synthetic sets and the Connect-Four loader
//   - game/connect4: board rules, position encoding and self-play data
//   - chart: training curves and decision regions with gonum/plot
//   - movepredict: the lazily trained Connect-Four move predictor
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// # Errors
//
// Precondition failures are returned, never panicked, and can be tested by
// category:
//
//	if errors.Is(err, errors.ErrShapeMismatch) { ... }
//
// # Commands
//
//   - cmd/mlrs: runs the demos and writes charts
//   - cmd/libconnect4: builds predict_move as a C shared library
package mlkit
