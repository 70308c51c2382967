package main

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	"github.com/YuminosukeSato/mlkit/chart"
	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/game/connect4"
	"github.com/YuminosukeSato/mlkit/linear"
	"github.com/YuminosukeSato/mlkit/metrics"
	"github.com/YuminosukeSato/mlkit/neural"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

type runner struct {
	seed    uint64
	plots   string
	dataset string
	games   int
	quick   bool
	logger  log.Logger
}

func header(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// save writes a chart when -plots is set. Chart failures are logged, not
// fatal.
func (r *runner) save(name string, p *plot.Plot, err error) {
	if r.plots == "" {
		return
	}
	if err == nil {
		path := filepath.Join(r.plots, name+".png")
		if err = chart.Save(p, path); err == nil {
			r.logger.Debug("Chart saved", log.PathKey, path)
			return
		}
	}
	r.logger.Warn("Chart skipped", "chart", name, "error", err.Error())
}

func (r *runner) iterations(n int) int {
	if r.quick {
		return max(n/100, 1)
	}
	return n
}

type binarySet struct {
	name string
	X, y *mat.Dense
}

func (r *runner) binarySets() ([]binarySet, error) {
	seq := random.New(r.seed)

	X1, y1 := dataset.LinearSimple()
	X2, y2, err := dataset.TwoClusters(seq, dataset.DefaultClusterSize)
	if err != nil {
		return nil, err
	}
	X3, y3 := dataset.XOR()
	X4, y4, err := dataset.Cross(seq, dataset.DefaultCrossSize)
	if err != nil {
		return nil, err
	}
	return []binarySet{
		{"linear_simple", X1, y1},
		{"linear_multiple", X2, y2},
		{"xor", X3, y3},
		{"cross", X4, y4},
	}, nil
}

type multiSet struct {
	name string
	X, Y *mat.Dense
}

func (r *runner) multiSets() ([]multiSet, error) {
	seq := random.New(r.seed + 1)

	X1, Y1, err := dataset.ThreeClassLinear(seq, dataset.DefaultThreeClass)
	if err != nil {
		return nil, err
	}
	X2, Y2, err := dataset.ThreeClassCross(seq, dataset.DefaultMultiCross)
	if err != nil {
		return nil, err
	}
	return []multiSet{
		{"multi_linear", X1, Y1},
		{"multi_cross", X2, Y2},
	}, nil
}

func (r *runner) linearClassification() error {
	header("Perceptron")
	sets, err := r.binarySets()
	if err != nil {
		return err
	}

	for _, s := range sets {
		p := linear.NewPerceptron(linear.WithSeed(r.seed), linear.WithMaxEpochs(1000))
		history, err := p.FitWithHistory(s.X, s.y)
		if err != nil {
			return err
		}
		acc, err := p.Score(s.X, s.y)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s epochs=%-5d converged=%-5t accuracy=%.3f weights=%.3f\n",
			s.name, p.NEpochs(), p.Converged(), acc, p.WeightsWithBias())

		n, _ := s.X.Dims()
		curve, err := chart.ErrorRateCurve(s.name+" error rate", history, n)
		r.save(s.name+"_curve", curve, err)
		regions, err := chart.DecisionBoundary(s.name, s.X, chart.SignClasses(s.y), signClassifier(p.PredictOne))
		r.save(s.name+"_data", regions, err)
	}

	header("Perceptron one-vs-rest")
	multi, err := r.multiSets()
	if err != nil {
		return err
	}
	for _, s := range multi {
		ovr := linear.NewOneVsRest(linear.WithSeed(r.seed), linear.WithMaxEpochs(1000))
		histories, err := ovr.FitWithHistory(s.X, s.Y)
		if err != nil {
			return err
		}
		scores, err := ovr.DecisionFunction(s.X)
		if err != nil {
			return err
		}
		acc, err := metrics.OneHotAccuracy(s.Y, scores)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s classes=%d accuracy=%.3f\n", s.name, ovr.NClasses(), acc)

		n, _ := s.X.Dims()
		for c, h := range histories {
			curve, err := chart.ErrorRateCurve(fmt.Sprintf("%s class %d error rate", s.name, c), h, n)
			r.save(fmt.Sprintf("%s_curve_class%d", s.name, c), curve, err)
		}
		classify := func(x []float64) int {
			pred, err := ovr.Predict(mat.NewDense(1, len(x), x))
			if err != nil {
				return 0
			}
			return int(pred.At(0, 0))
		}
		regions, err := chart.DecisionBoundary(s.name, s.X, chart.ArgmaxClasses(s.Y), classify)
		r.save(s.name+"_data", regions, err)
	}
	return nil
}

func signClassifier(predict func([]float64) (float64, error)) func([]float64) int {
	return func(x []float64) int {
		v, err := predict(x)
		if err != nil || v < 0 {
			return 0
		}
		return 1
	}
}

func (r *runner) linearRegression() error {
	header("Linear regression")

	X1, y1 := dataset.Regression1D()
	X2, y2 := dataset.Regression2D()
	X3, y3, err := dataset.Line(21, -1, 1, 2, 0.5)
	if err != nil {
		return err
	}

	cases := []struct {
		name   string
		X, y   *mat.Dense
		lr     float64
		epochs int
	}{
		{"regression_1d", X1, y1, 0.3, 100},
		{"regression_2d", X2, y2, 0.05, 2000},
		{"regression_line", X3, y3, 0.05, 200},
	}

	for _, c := range cases {
		reg := linear.NewLinearRegressor(
			linear.WithLearningRate(c.lr),
			linear.WithMaxEpochs(c.epochs),
			linear.WithSeed(r.seed),
		)
		history, err := reg.FitWithHistory(c.X, c.y)
		if err != nil {
			return err
		}
		if err := errors.CheckNumericalStability("LinearRegressor.Fit", reg.WeightsWithBias(), c.epochs); err != nil {
			r.logger.Warn("Training diverged", "model", c.name, "error", err.Error())
		} else if err := errors.CheckScalar("LinearRegressor.FitWithHistory", history[len(history)-1], c.epochs); err != nil {
			r.logger.Warn("Training diverged", "model", c.name, "error", err.Error())
		}
		fmt.Printf("%-16s final_mse=%.6f weights=%.4f\n", c.name, history[len(history)-1], reg.WeightsWithBias())

		curve, err := chart.Curve(c.name+" MSE", "mse", history)
		r.save(c.name+"_curve", curve, err)
		if _, cols := c.X.Dims(); cols == 1 {
			line, err := chart.RegressionLine(c.name, c.X, c.y, func(x float64) float64 {
				v, _ := reg.PredictOne([]float64{x})
				return v
			})
			r.save(c.name+"_fit", line, err)
		}
	}
	return nil
}

type mlpCase struct {
	name       string
	X, Y       *mat.Dense
	widths     []int
	iterations int
	lr         float64
}

func (r *runner) trainMLP(c mlpCase, task neural.Task) (*neural.MLP, *mat.Dense, error) {
	m, err := neural.NewMLP(c.widths, neural.WithSeed(r.seed))
	if err != nil {
		return nil, nil, err
	}
	if err := m.Train(c.X, c.Y, task, r.iterations(c.iterations), c.lr); err != nil {
		return nil, nil, err
	}
	pred, err := m.PredictBatch(c.X, task)
	if err != nil {
		return nil, nil, err
	}
	if err := errors.CheckNumericalStability("MLP.Train", pred.RawMatrix().Data, c.iterations); err != nil {
		r.logger.Warn("Training diverged", "model", c.name, "error", err.Error())
	}
	return m, pred, nil
}

func (r *runner) mlpClassification() error {
	header("MLP classification")

	sets, err := r.binarySets()
	if err != nil {
		return err
	}
	multi, err := r.multiSets()
	if err != nil {
		return err
	}

	cases := []mlpCase{
		{sets[0].name, sets[0].X, sets[0].y, []int{2, 1}, 50_000, 0.1},
		{sets[1].name, sets[1].X, sets[1].y, []int{2, 1}, 50_000, 0.1},
		{sets[2].name, sets[2].X, sets[2].y, []int{2, 2, 1}, 500_000, 0.1},
		{sets[3].name, sets[3].X, sets[3].y, []int{2, 4, 1}, 500_000, 0.05},
		{multi[0].name, multi[0].X, multi[0].Y, []int{2, 3}, 500_000, 0.05},
		{multi[1].name, multi[1].X, multi[1].Y, []int{2, 16, 16, 3}, 10_000_000, 0.005},
	}

	for _, c := range cases {
		m, pred, err := r.trainMLP(c, neural.Classification)
		if err != nil {
			return err
		}

		var (
			acc     float64
			classes []int
		)
		if _, k := c.Y.Dims(); k == 1 {
			acc, err = metrics.Accuracy(c.Y, pred)
			classes = chart.SignClasses(c.Y)
		} else {
			acc, err = metrics.OneHotAccuracy(c.Y, pred)
			classes = chart.ArgmaxClasses(c.Y)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%-16s topology=%v accuracy=%.3f\n", c.name, c.widths, acc)

		regions, err := chart.DecisionBoundary("MLP "+c.name, c.X, classes, mlpClassifier(m))
		r.save("mlp_"+c.name+"_data", regions, err)
	}
	return nil
}

func mlpClassifier(m *neural.MLP) func([]float64) int {
	return func(x []float64) int {
		out, err := m.Predict(x, neural.Classification)
		if err != nil {
			return 0
		}
		if len(out) == 1 {
			if out[0] < 0 {
				return 0
			}
			return 1
		}
		return chart.ArgmaxClasses(mat.NewDense(1, len(out), out))[0]
	}
}

func (r *runner) mlpRegression() error {
	header("MLP regression")

	X1, y1, err := dataset.Line(2, 1, 2, 2, 0)
	if err != nil {
		return err
	}
	X2, y2 := dataset.NonLinear1D()
	X3, y3 := dataset.Regression2D()
	X4, y4 := dataset.Collinear()
	X5, y5 := dataset.NonLinear2D()

	cases := []mlpCase{
		{"linear_1d", X1, y1, []int{1, 1}, 50_000, 0.1},
		{"nonlinear_1d", X2, y2, []int{1, 3, 1}, 100_000, 0.05},
		{"linear_2d", X3, y3, []int{2, 1}, 50_000, 0.1},
		{"collinear_2d", X4, y4, []int{2, 1}, 100_000, 0.1},
		{"nonlinear_2d", X5, y5, []int{2, 2, 1}, 200_000, 0.01},
	}

	for _, c := range cases {
		m, pred, err := r.trainMLP(c, neural.Regression)
		if err != nil {
			return err
		}
		mse, err := metrics.MSEMatrix(c.Y, pred)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s topology=%v mse=%.6f\n", c.name, c.widths, mse)
		for i, x := range dataset.Rows(c.X) {
			fmt.Printf("  x=%v y=%g pred=%.2f\n", x, c.Y.At(i, 0), pred.At(i, 0))
		}

		if _, cols := c.X.Dims(); cols == 1 {
			line, err := chart.RegressionLine("MLP "+c.name, c.X, c.Y, func(x float64) float64 {
				out, err := m.Predict([]float64{x}, neural.Regression)
				if err != nil {
					return 0
				}
				return out[0]
			})
			r.save("mlp_"+c.name+"_fit", line, err)
		}
	}
	return nil
}

func (r *runner) connect4Dataset() error {
	header("Connect-Four dataset")

	cfg := connect4.DefaultSelfPlayConfig()
	cfg.Games = r.games
	cfg.Seed = r.seed
	n, err := connect4.WriteDatasetFile(r.dataset, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d positions from %d games to %s\n", n, cfg.Games, r.dataset)
	return nil
}
