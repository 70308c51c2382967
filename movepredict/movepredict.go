// Package movepredict serves Connect-Four move predictions from an MLP that
// is trained lazily on first use. It backs the predict_move C symbol built
// in cmd/libconnect4.
package movepredict

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/game/connect4"
	"github.com/YuminosukeSato/mlkit/metrics"
	"github.com/YuminosukeSato/mlkit/neural"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// Network shape: the 129-value position encoding in, one score per column out.
const (
	InputDim  = dataset.InputDim
	OutputDim = dataset.OutputDim
)

// FallbackColumn is returned whenever no prediction can be made.
const FallbackColumn int32 = 0

// Config describes how the model is trained on first use.
type Config struct {
	DatasetPath  string
	Hidden       []int
	Iterations   int
	LearningRate float64
	// Seed of the weight initialisation and sample draws. Zero selects a
	// seed from the runtime's random source.
	Seed   uint64
	Logger log.Logger
}

// DefaultConfig trains a 129-64-64-7 network for 200000 iterations at a
// learning rate of 0.01 on ./dataset.csv.
func DefaultConfig() Config {
	return Config{
		DatasetPath:  "dataset.csv",
		Hidden:       []int{64, 64},
		Iterations:   200_000,
		LearningRate: 0.01,
	}
}

// Topology returns the layer widths the configuration describes.
func (c Config) Topology() []int {
	widths := make([]int, 0, len(c.Hidden)+2)
	widths = append(widths, InputDim)
	widths = append(widths, c.Hidden...)
	return append(widths, OutputDim)
}

// Predictor owns the move model. The model is built at most once; every
// forward pass runs under the mutex because the MLP reuses its buffers.
type Predictor struct {
	cfg    Config
	logger log.Logger

	once  sync.Once
	mu    sync.Mutex
	model *neural.MLP
	err   error
}

// New returns a Predictor that trains on cfg the first time it is used.
func New(cfg Config) *Predictor {
	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("movepredict")
	}
	return &Predictor{cfg: cfg, logger: logger}
}

// NewWithModel returns a Predictor serving an already trained model.
func NewWithModel(m *neural.MLP) (*Predictor, error) {
	widths := m.Topology()
	if widths[0] != InputDim {
		return nil, errors.NewDimensionError("movepredict.NewWithModel", InputDim, widths[0], 1)
	}
	if out := widths[len(widths)-1]; out != OutputDim {
		return nil, errors.NewDimensionError("movepredict.NewWithModel", OutputDim, out, 1)
	}

	p := New(Config{})
	p.once.Do(func() { p.model = m })
	return p, nil
}

// Init loads the dataset and trains the model unless that already happened.
// A failure is remembered and returned by every later call.
func (p *Predictor) Init() error {
	p.once.Do(func() {
		p.model, p.err = p.train()
	})
	return p.err
}

func (p *Predictor) train() (*neural.MLP, error) {
	start := time.Now()

	X, Y, err := dataset.LoadConnect4File(p.cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	opts := []neural.Option{neural.WithLogger(p.logger)}
	if p.cfg.Seed != 0 {
		opts = append(opts, neural.WithSeed(p.cfg.Seed))
	}
	m, err := neural.NewMLP(p.cfg.Topology(), opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Train(X, Y, neural.Classification, p.cfg.Iterations, p.cfg.LearningRate); err != nil {
		return nil, err
	}

	if acc, err := trainingAccuracy(m, X, Y); err == nil {
		p.logger.Info("Move model ready",
			log.PathKey, p.cfg.DatasetPath,
			log.AccuracyKey, acc,
			log.RandomSeedKey, m.Seed(),
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return m, nil
}

func trainingAccuracy(m *neural.MLP, X, Y mat.Matrix) (float64, error) {
	pred, err := m.PredictBatch(X, neural.Classification)
	if err != nil {
		return 0, err
	}
	return metrics.OneHotAccuracy(Y, pred)
}

// Scores returns the network output for one encoded position.
func (p *Predictor) Scores(input []float64) (scores []float64, err error) {
	defer errors.Recover(&err, "movepredict.Scores")

	if len(input) != InputDim {
		return nil, errors.NewDimensionError("movepredict.Scores", InputDim, len(input), 1)
	}
	if err := p.Init(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.model.Predict(input, neural.Classification)
}

// Predict returns the highest scoring column for one encoded position. Ties
// go to the lowest column.
func (p *Predictor) Predict(input []float64) (int, error) {
	scores, err := p.Scores(input)
	if err != nil {
		return 0, err
	}
	return numeric.Argmax(scores), nil
}

// PredictMove is Predict with every failure mapped to FallbackColumn. It
// never panics.
func (p *Predictor) PredictMove(input []float64) int32 {
	col, err := p.Predict(input)
	if err != nil {
		p.logger.Error("Move prediction failed", err)
		return FallbackColumn
	}
	return int32(col)
}

// BestLegalMove returns the highest scoring column of b that is not full.
func (p *Predictor) BestLegalMove(b *connect4.Board, toMove connect4.Disc) (int, error) {
	legal := b.LegalMoves()
	if len(legal) == 0 {
		return 0, errors.NewValueError("movepredict.BestLegalMove", "board is full")
	}

	scores, err := p.Scores(connect4.Encode(b, toMove))
	if err != nil {
		return 0, err
	}
	best := legal[0]
	for _, col := range legal[1:] {
		if scores[col] > scores[best] {
			best = col
		}
	}
	return best, nil
}
