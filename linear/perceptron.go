package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/metrics"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// machineEpsilon is the gap between 1.0 and the next float64.
const machineEpsilon = 0x1p-52

// Perceptron is a binary linear classifier over ±1 labels trained with the
// Rosenblatt rule. Training stops after the first epoch without mistakes.
type Perceptron struct {
	state *model.StateManager
	cfg   config

	weights   []float64
	nEpochs   int
	converged bool
}

// NewPerceptron creates a Perceptron. Defaults: learning rate 1.0, 100
// epochs, shuffling on, seed 42.
func NewPerceptron(opts ...Option) *Perceptron {
	return &Perceptron{
		state: model.NewStateManager(),
		cfg:   newConfig("linear.perceptron", 1.0, 100, opts),
	}
}

// Fit trains on X (n×d) and y (n×1, values ±1).
func (p *Perceptron) Fit(X, y mat.Matrix) error {
	_, err := p.FitWithHistory(X, y)
	return err
}

// FitWithHistory trains like Fit and returns the number of mistakes made in
// each epoch. When training converges the history ends with its only zero.
func (p *Perceptron) FitWithHistory(X, y mat.Matrix) ([]int, error) {
	if err := p.cfg.validate(); err != nil {
		return nil, err
	}
	biased, labels, err := prepare("Perceptron.Fit", X, y)
	if err != nil {
		return nil, err
	}

	n, cols := biased.Dims()
	logger := p.cfg.logger.With(log.ModelNameKey, "Perceptron")
	logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, cols-1,
		log.LearningRateKey, p.cfg.learningRate,
		log.MaxEpochsKey, p.cfg.maxEpochs,
		log.RandomSeedKey, p.cfg.seed,
	)
	start := time.Now()

	p.weights = make([]float64, cols)
	p.converged = false
	seq := random.New(p.cfg.seed)
	history := make([]int, 0, p.cfg.maxEpochs)

	for epoch := 0; epoch < p.cfg.maxEpochs; epoch++ {
		mistakes := 0
		for _, i := range seq.Order(n, p.cfg.shuffle) {
			row := biased.RawRowView(i)
			activation, err := numeric.Dot(p.weights, row)
			if err != nil {
				return nil, err
			}
			if math.Abs(sign(activation)-labels[i]) > machineEpsilon {
				if err := numeric.Axpy(p.cfg.learningRate*labels[i], row, p.weights); err != nil {
					return nil, err
				}
				mistakes++
			}
		}

		history = append(history, mistakes)
		logger.Debug("Epoch completed", log.EpochKey, epoch+1, log.MistakesKey, mistakes)
		if mistakes == 0 {
			p.converged = true
			break
		}
	}

	p.nEpochs = len(history)
	p.state.SetFitted(cols-1, n)

	if !p.converged {
		errors.Warn(errors.NewConvergenceWarning("Perceptron", p.cfg.maxEpochs, ""))
	}
	logger.Info("Training completed",
		log.EpochKey, p.nEpochs,
		log.ConvergedKey, p.converged,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return history, nil
}

// Predict returns an n×1 matrix of ±1 labels: +1 where w·[1, x] >= 0.
func (p *Perceptron) Predict(X mat.Matrix) (mat.Matrix, error) {
	scores, err := p.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	n := scores.Len()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, sign(scores.AtVec(i)))
	}
	return out, nil
}

// DecisionFunction returns the raw activation w·[1, x] of every row.
func (p *Perceptron) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if err := p.state.RequireFitted("Perceptron", "DecisionFunction"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := p.state.RequireFeatures("Perceptron.DecisionFunction", c); err != nil {
		return nil, err
	}
	return activations(p.weights, X), nil
}

// PredictOne classifies a single sample.
func (p *Perceptron) PredictOne(x []float64) (float64, error) {
	if err := p.state.RequireFitted("Perceptron", "PredictOne"); err != nil {
		return 0, err
	}
	if err := p.state.RequireFeatures("Perceptron.PredictOne", len(x)); err != nil {
		return 0, err
	}
	activation, err := numeric.Dot(p.weights, withBias(x))
	if err != nil {
		return 0, err
	}
	return sign(activation), nil
}

// Score returns the accuracy of the predictions for X against y.
func (p *Perceptron) Score(X, y mat.Matrix) (float64, error) {
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}

// WeightsWithBias returns a copy of [bias, w1, ..., wd], or nil before Fit.
func (p *Perceptron) WeightsWithBias() []float64 {
	if p.weights == nil {
		return nil
	}
	return append([]float64(nil), p.weights...)
}

// IsFitted reports whether Fit has completed successfully.
func (p *Perceptron) IsFitted() bool {
	return p.state.IsFitted()
}

// NEpochs returns the number of epochs run by the last Fit.
func (p *Perceptron) NEpochs() int {
	return p.nEpochs
}

// Converged reports whether the last Fit ended with a mistake-free epoch.
func (p *Perceptron) Converged() bool {
	return p.converged
}
