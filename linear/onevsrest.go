package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// OneVsRest is a multi-class classifier made of one Perceptron per class.
// Targets are an n×k matrix whose column c is +1 for samples of class c and
// -1 otherwise. The perceptron for class c is seeded with seed+c.
type OneVsRest struct {
	state *model.StateManager
	opts  []Option
	cfg   config

	models []*Perceptron
}

// NewOneVsRest creates a OneVsRest classifier. The options apply to every
// per-class Perceptron and use the Perceptron defaults.
func NewOneVsRest(opts ...Option) *OneVsRest {
	return &OneVsRest{
		state: model.NewStateManager(),
		opts:  opts,
		cfg:   newConfig("linear.onevsrest", 1.0, 100, opts),
	}
}

// Fit trains one perceptron per column of Y.
func (o *OneVsRest) Fit(X, Y mat.Matrix) error {
	_, err := o.FitWithHistory(X, Y)
	return err
}

// FitWithHistory trains like Fit and returns the mistake history of every
// class, indexed by class.
func (o *OneVsRest) FitWithHistory(X, Y mat.Matrix) ([][]int, error) {
	if err := o.cfg.validate(); err != nil {
		return nil, err
	}

	n, d := X.Dims()
	ny, k := Y.Dims()
	if n == 0 {
		return nil, errors.NewEmptyDataError("OneVsRest.Fit")
	}
	if ny != n {
		return nil, errors.NewDimensionError("OneVsRest.Fit", n, ny, 0)
	}

	o.cfg.logger.Info("Training started",
		log.ModelNameKey, "OneVsRest",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.TargetsKey, k,
	)

	models := make([]*Perceptron, k)
	histories := make([][]int, k)
	for c := 0; c < k; c++ {
		opts := append(append([]Option(nil), o.opts...), WithSeed(o.cfg.seed+uint64(c)), WithLogger(o.cfg.logger.With(log.ClassKey, c)))
		p := NewPerceptron(opts...)

		yc := mat.NewDense(n, 1, mat.Col(nil, c, Y))
		history, err := p.FitWithHistory(X, yc)
		if err != nil {
			return nil, errors.Wrapf(err, "class %d", c)
		}
		models[c] = p
		histories[c] = history
	}

	o.models = models
	o.state.SetFitted(d, n)
	return histories, nil
}

// DecisionFunction returns the n×k matrix of per-class activations.
func (o *OneVsRest) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if err := o.state.RequireFitted("OneVsRest", "DecisionFunction"); err != nil {
		return nil, err
	}

	n, _ := X.Dims()
	scores := mat.NewDense(n, len(o.models), nil)
	for c, p := range o.models {
		col, err := p.DecisionFunction(X)
		if err != nil {
			return nil, err
		}
		scores.SetCol(c, col.RawVector().Data)
	}
	return scores, nil
}

// Predict returns an n×1 matrix of class indices: the class whose
// perceptron has the largest activation, lowest index on ties.
func (o *OneVsRest) Predict(X mat.Matrix) (mat.Matrix, error) {
	scores, err := o.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	n, _ := scores.Dims()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, float64(numeric.Argmax(scores.RawRowView(i))))
	}
	return out, nil
}

// Models returns the per-class perceptrons, indexed by class.
func (o *OneVsRest) Models() []*Perceptron {
	return o.models
}

// NClasses returns the number of classes seen by the last Fit.
func (o *OneVsRest) NClasses() int {
	return len(o.models)
}

// IsFitted reports whether Fit has completed successfully.
func (o *OneVsRest) IsFitted() bool {
	return o.state.IsFitted()
}
