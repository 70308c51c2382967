package linear

import (
	"math"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// config holds the hyperparameters shared by Perceptron and LinearRegressor.
type config struct {
	learningRate float64 // step size for every weight update
	maxEpochs    int     // upper bound on passes over the data
	shuffle      bool    // visit samples in a fresh random order each epoch
	seed         uint64  // seed of the per-Fit random sequence
	logger       log.Logger
}

// Option configures a Perceptron or LinearRegressor.
type Option func(*config)

// WithLearningRate sets the step size. It must be positive.
func WithLearningRate(lr float64) Option {
	return func(c *config) {
		c.learningRate = lr
	}
}

// WithMaxEpochs sets the maximum number of passes over the data. It must be
// positive.
func WithMaxEpochs(n int) Option {
	return func(c *config) {
		c.maxEpochs = n
	}
}

// WithShuffle sets whether samples are visited in a random order each epoch.
func WithShuffle(shuffle bool) Option {
	return func(c *config) {
		c.shuffle = shuffle
	}
}

// WithSeed sets the seed of the sample-order sequence.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithLogger sets the logger used for training progress.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(component string, lr float64, maxEpochs int, opts []Option) config {
	c := config{
		learningRate: lr,
		maxEpochs:    maxEpochs,
		shuffle:      true,
		seed:         42,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName(component)
	}
	return c
}

func (c config) validate() error {
	if !(c.learningRate > 0) || math.IsInf(c.learningRate, 1) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", c.learningRate)
	}
	if c.maxEpochs <= 0 {
		return errors.NewValidationError("max_epochs", "must be positive", c.maxEpochs)
	}
	return nil
}
