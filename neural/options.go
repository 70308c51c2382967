package neural

import (
	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

type options struct {
	seq    *random.Sequence
	logger log.Logger
}

// Option configures an MLP.
type Option func(*options)

// WithSeed makes weight initialisation and sample draws reproducible.
// Without it the MLP is seeded from the runtime's random source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seq = random.New(seed)
	}
}

// WithSequence hands the MLP an existing random sequence. The MLP becomes
// its only user.
func WithSequence(seq *random.Sequence) Option {
	return func(o *options) {
		o.seq = seq
	}
}

// WithLogger sets the logger used for training progress.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
