package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/metrics"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// LinearRegressor fits y ≈ w·[1, x] with stochastic delta-rule (LMS) updates.
// It always runs exactly maxEpochs epochs.
type LinearRegressor struct {
	state *model.StateManager
	cfg   config

	weights []float64
}

// NewLinearRegressor creates a LinearRegressor. Defaults: learning rate 0.01,
// 1000 epochs, shuffling on, seed 42.
func NewLinearRegressor(opts ...Option) *LinearRegressor {
	return &LinearRegressor{
		state: model.NewStateManager(),
		cfg:   newConfig("linear.regressor", 0.01, 1000, opts),
	}
}

// Fit trains on X (n×d) and y (n×1).
func (r *LinearRegressor) Fit(X, y mat.Matrix) error {
	_, err := r.fit(X, y, false)
	return err
}

// FitWithHistory trains like Fit and returns the training-set MSE measured
// after every epoch. The history has exactly maxEpochs entries.
func (r *LinearRegressor) FitWithHistory(X, y mat.Matrix) ([]float64, error) {
	return r.fit(X, y, true)
}

func (r *LinearRegressor) fit(X, y mat.Matrix, record bool) ([]float64, error) {
	if err := r.cfg.validate(); err != nil {
		return nil, err
	}
	biased, targets, err := prepare("LinearRegressor.Fit", X, y)
	if err != nil {
		return nil, err
	}

	n, cols := biased.Dims()
	logger := r.cfg.logger.With(log.ModelNameKey, "LinearRegressor")
	logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, cols-1,
		log.LearningRateKey, r.cfg.learningRate,
		log.MaxEpochsKey, r.cfg.maxEpochs,
		log.RandomSeedKey, r.cfg.seed,
	)
	start := time.Now()

	r.weights = make([]float64, cols)
	seq := random.New(r.cfg.seed)

	var history []float64
	var preds []float64
	if record {
		history = make([]float64, 0, r.cfg.maxEpochs)
		preds = make([]float64, n)
	}

	for epoch := 0; epoch < r.cfg.maxEpochs; epoch++ {
		for _, i := range seq.Order(n, r.cfg.shuffle) {
			row := biased.RawRowView(i)
			prediction, err := numeric.Dot(r.weights, row)
			if err != nil {
				return nil, err
			}
			delta := targets[i] - prediction
			if err := numeric.Axpy(r.cfg.learningRate*delta, row, r.weights); err != nil {
				return nil, err
			}
		}

		if record {
			for i := 0; i < n; i++ {
				preds[i], _ = numeric.Dot(r.weights, biased.RawRowView(i))
			}
			mse, err := numeric.MeanSquaredError(targets, preds)
			if err != nil {
				return nil, err
			}
			history = append(history, mse)
			logger.Debug("Epoch completed", log.EpochKey, epoch+1, log.LossKey, mse)
		}
	}

	r.state.SetFitted(cols-1, n)
	logger.Info("Training completed",
		log.EpochKey, r.cfg.maxEpochs,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return history, nil
}

// Predict returns an n×1 matrix of w·[1, x] values.
func (r *LinearRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	scores, err := r.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(scores.Len(), 1, scores.RawVector().Data), nil
}

// DecisionFunction returns w·[1, x] for every row as a vector.
func (r *LinearRegressor) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if err := r.state.RequireFitted("LinearRegressor", "Predict"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := r.state.RequireFeatures("LinearRegressor.Predict", c); err != nil {
		return nil, err
	}
	return activations(r.weights, X), nil
}

// PredictOne predicts a single sample.
func (r *LinearRegressor) PredictOne(x []float64) (float64, error) {
	if err := r.state.RequireFitted("LinearRegressor", "PredictOne"); err != nil {
		return 0, err
	}
	if err := r.state.RequireFeatures("LinearRegressor.PredictOne", len(x)); err != nil {
		return 0, err
	}
	return numeric.Dot(r.weights, withBias(x))
}

// Score returns the R² of the predictions for X against y.
func (r *LinearRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	n, _ := pred.Dims()
	yRows, _ := y.Dims()
	if yRows != n {
		return 0, errors.NewDimensionError("LinearRegressor.Score", n, yRows, 0)
	}
	return metrics.R2Score(mat.NewVecDense(n, mat.Col(nil, 0, y)), mat.NewVecDense(n, mat.Col(nil, 0, pred)))
}

// WeightsWithBias returns a copy of [bias, w1, ..., wd], or nil before Fit.
func (r *LinearRegressor) WeightsWithBias() []float64 {
	if r.weights == nil {
		return nil
	}
	return append([]float64(nil), r.weights...)
}

// IsFitted reports whether Fit has completed successfully.
func (r *LinearRegressor) IsFitted() bool {
	return r.state.IsFitted()
}
