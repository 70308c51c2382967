// Package neural implements a fully-connected multi-layer perceptron with
// tanh hidden units, trained by per-sample stochastic backpropagation.
//
// Layer l (1..L) owns one weight block stored destination-major: row j holds
// the weights flowing into neuron j from every neuron i of layer l-1. Index 0
// is the bias slot on both sides. Row 0 (weights into the bias neuron) is
// always zero and never updated.
package neural

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// Task selects the output nonlinearity and the output-layer delta.
type Task int

const (
	// Regression leaves the output layer linear.
	Regression Task = iota
	// Classification applies tanh to the output layer; targets are in [-1, 1].
	Classification
)

func (t Task) String() string {
	switch t {
	case Regression:
		return "regression"
	case Classification:
		return "classification"
	default:
		return fmt.Sprintf("Task(%d)", int(t))
	}
}

// MLP is a multi-layer perceptron. It is not safe for concurrent use: even
// Predict rewrites the activation buffers.
type MLP struct {
	widths  []int
	weights []*mat.Dense // weights[0] is nil
	acts    [][]float64  // acts[l][0] == 1
	deltas  [][]float64
	sums    [][]float64 // scratch for backpropagated sums, same shape as acts

	seq    *random.Sequence
	logger log.Logger
}

// NewMLP builds an MLP with the given layer widths, input first. Every
// non-bias weight is drawn uniformly from [-1, 1).
func NewMLP(widths []int, opts ...Option) (*MLP, error) {
	if len(widths) < 2 {
		return nil, errors.NewTopologyError(widths, "need at least an input and an output layer")
	}
	for l, w := range widths {
		if w < 1 {
			return nil, errors.NewTopologyError(widths, fmt.Sprintf("layer %d has width %d", l, w))
		}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seq == nil {
		o.seq = random.NewEntropy()
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("neural.mlp")
	}

	m := &MLP{
		widths:  append([]int(nil), widths...),
		weights: make([]*mat.Dense, len(widths)),
		acts:    make([][]float64, len(widths)),
		deltas:  make([][]float64, len(widths)),
		sums:    make([][]float64, len(widths)),
		seq:     o.seq,
		logger:  o.logger.With(log.ModelNameKey, "MLP", log.TopologyKey, widths),
	}

	for l, w := range m.widths {
		m.acts[l] = make([]float64, w+1)
		m.acts[l][0] = 1
		m.deltas[l] = make([]float64, w+1)
		m.sums[l] = make([]float64, w+1)
		if l == 0 {
			continue
		}

		prev := m.widths[l-1]
		W := mat.NewDense(w+1, prev+1, nil)
		for i := 0; i <= prev; i++ {
			for j := 1; j <= w; j++ {
				W.Set(j, i, m.seq.Uniform(-1, 1))
			}
		}
		m.weights[l] = W
	}

	m.logger.Debug("MLP initialised", log.RandomSeedKey, m.seq.Seed())
	return m, nil
}

// Topology returns a copy of the layer widths.
func (m *MLP) Topology() []int {
	return append([]int(nil), m.widths...)
}

// Seed returns the seed of the MLP's random sequence.
func (m *MLP) Seed() uint64 {
	return m.seq.Seed()
}

func (m *MLP) outputLayer() int {
	return len(m.widths) - 1
}

// propagate runs the forward pass. input must have widths[0] values.
func (m *MLP) propagate(input []float64, task Task) {
	copy(m.acts[0][1:], input)

	last := m.outputLayer()
	for l := 1; l <= last; l++ {
		W := m.weights[l]
		prev := m.acts[l-1]
		for j := 1; j <= m.widths[l]; j++ {
			signal := floats.Dot(W.RawRowView(j), prev)
			if task == Classification || l < last {
				signal = math.Tanh(signal)
			}
			m.acts[l][j] = signal
		}
	}
}

// Predict runs a forward pass and returns a copy of the output activations.
func (m *MLP) Predict(input []float64, task Task) ([]float64, error) {
	if len(input) != m.widths[0] {
		return nil, errors.NewDimensionError("MLP.Predict", m.widths[0], len(input), 1)
	}
	m.propagate(input, task)
	return append([]float64(nil), m.acts[m.outputLayer()][1:]...), nil
}

// PredictBatch runs Predict on every row of X and returns one output row per
// sample.
func (m *MLP) PredictBatch(X mat.Matrix, task Task) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError("MLP.PredictBatch")
	}
	if c != m.widths[0] {
		return nil, errors.NewDimensionError("MLP.PredictBatch", m.widths[0], c, 1)
	}

	last := m.outputLayer()
	out := mat.NewDense(r, m.widths[last], nil)
	input := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(input, i, X)
		m.propagate(input, task)
		out.SetRow(i, m.acts[last][1:])
	}
	return out, nil
}

// Train runs iterations stochastic steps. Each step draws one sample
// uniformly with replacement, propagates it, backpropagates the squared
// error and updates every weight except those into bias neurons.
//
// X is n×widths[0] and Y is n×widths[L]. All arguments are validated before
// any weight changes.
func (m *MLP) Train(X, Y mat.Matrix, task Task, iterations int, learningRate float64) error {
	n, c := X.Dims()
	ny, cy := Y.Dims()
	last := m.outputLayer()

	switch {
	case n == 0:
		return errors.NewEmptyDataError("MLP.Train")
	case ny != n:
		return errors.NewDimensionError("MLP.Train", n, ny, 0)
	case c != m.widths[0]:
		return errors.NewDimensionError("MLP.Train", m.widths[0], c, 1)
	case cy != m.widths[last]:
		return errors.NewDimensionError("MLP.Train", m.widths[last], cy, 1)
	case iterations <= 0:
		return errors.NewValidationError("iterations", "must be positive", iterations)
	case !(learningRate > 0) || math.IsInf(learningRate, 1):
		return errors.NewValidationError("learning_rate", "must be a positive finite number", learningRate)
	}

	inputs := mat.DenseCopyOf(X)
	targets := mat.DenseCopyOf(Y)

	m.logger.Info("Training started",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, n,
		log.IterationsKey, iterations,
		log.LearningRateKey, learningRate,
		"task", task.String(),
	)
	start := time.Now()

	every := iterations / 10
	if every < 1 {
		every = 1
	}

	for it := 0; it < iterations; it++ {
		k := m.seq.Index(n)
		m.step(inputs.RawRowView(k), targets.RawRowView(k), task, learningRate)

		if (it+1)%every == 0 {
			m.logger.Debug("Training progress", log.IterationKey, it+1, log.IterationsKey, iterations)
		}
	}

	m.logger.Info("Training completed", log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

// step performs one forward/backward/update cycle on a single sample.
func (m *MLP) step(input, target []float64, task Task, learningRate float64) {
	m.propagate(input, task)
	last := m.outputLayer()

	out := m.acts[last]
	for j := 1; j <= m.widths[last]; j++ {
		delta := out[j] - target[j-1]
		if task == Classification {
			delta *= 1 - out[j]*out[j]
		}
		m.deltas[last][j] = delta
	}

	for l := last; l >= 2; l-- {
		sums := m.sums[l-1]
		for i := range sums {
			sums[i] = 0
		}
		W := m.weights[l]
		for j := 1; j <= m.widths[l]; j++ {
			floats.AddScaled(sums, m.deltas[l][j], W.RawRowView(j))
		}

		a := m.acts[l-1]
		for i := 1; i <= m.widths[l-1]; i++ {
			m.deltas[l-1][i] = sums[i] * (1 - a[i]*a[i])
		}
	}

	for l := 1; l <= last; l++ {
		W := m.weights[l]
		prev := m.acts[l-1]
		for j := 1; j <= m.widths[l]; j++ {
			floats.AddScaled(W.RawRowView(j), -learningRate*m.deltas[l][j], prev)
		}
	}
}

// Weight returns W[l][i][j]: the weight from neuron i of layer l-1 into
// neuron j of layer l. Weights into bias neurons (j == 0) are always 0.
func (m *MLP) Weight(l, i, j int) (float64, error) {
	if err := m.checkAddress("MLP.Weight", l, i, j, 0); err != nil {
		return 0, err
	}
	return m.weights[l].At(j, i), nil
}

// SetWeight overwrites W[l][i][j]. Weights into bias neurons cannot be set.
func (m *MLP) SetWeight(l, i, j int, v float64) error {
	if err := m.checkAddress("MLP.SetWeight", l, i, j, 1); err != nil {
		return err
	}
	m.weights[l].Set(j, i, v)
	return nil
}

func (m *MLP) checkAddress(op string, l, i, j, minDest int) error {
	if l < 1 || l >= len(m.widths) {
		return errors.NewIndexError(op, "layer", l, 1, len(m.widths))
	}
	if i < 0 || i > m.widths[l-1] {
		return errors.NewIndexError(op, "source", i, 0, m.widths[l-1]+1)
	}
	if j < minDest || j > m.widths[l] {
		return errors.NewIndexError(op, "destination", j, minDest, m.widths[l]+1)
	}
	return nil
}
