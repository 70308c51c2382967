// Package chart renders training diagnostics with gonum/plot: per-epoch
// curves, 2-D decision regions and fitted regression lines.
package chart

import (
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/mlkit/core/numeric"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Default image size used by Save.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// gridSize is the number of cells per axis sampled by DecisionBoundary.
const gridSize = 100

// Curve plots values against their 1-based epoch number.
func Curve(title, yLabel string, values []float64) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.NewEmptyDataError("chart.Curve")
	}

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, pts); err != nil {
		return nil, errors.Wrap(err, "chart: adding curve")
	}
	return p, nil
}

// ErrorRateCurve plots a perceptron mistake history as the fraction of
// misclassified samples per epoch.
func ErrorRateCurve(title string, mistakes []int, samples int) (*plot.Plot, error) {
	if samples <= 0 {
		return nil, errors.NewValidationError("samples", "must be positive", samples)
	}
	rates := make([]float64, len(mistakes))
	for i, m := range mistakes {
		rates[i] = float64(m) / float64(samples)
	}
	return Curve(title, "error rate", rates)
}

// SignClasses maps a ±1 label column to classes 1 (positive) and 0.
func SignClasses(y mat.Matrix) []int {
	r, _ := y.Dims()
	classes := make([]int, r)
	for i := range classes {
		if y.At(i, 0) >= 0 {
			classes[i] = 1
		}
	}
	return classes
}

// ArgmaxClasses maps each row of a one-hot or score matrix to its argmax.
func ArgmaxClasses(Y mat.Matrix) []int {
	r, c := Y.Dims()
	classes := make([]int, r)
	row := make([]float64, c)
	for i := range classes {
		classes[i] = numeric.Argmax(mat.Row(row, i, Y))
	}
	return classes
}

// DecisionBoundary shades the plane by the class classify assigns to each
// grid cell and overlays the samples of X (two columns) coloured by class.
func DecisionBoundary(title string, X mat.Matrix, classes []int, classify func(x []float64) int) (*plot.Plot, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError("chart.DecisionBoundary")
	}
	if c != 2 {
		return nil, errors.NewDimensionError("chart.DecisionBoundary", 2, c, 1)
	}
	if len(classes) != r {
		return nil, errors.NewDimensionError("chart.DecisionBoundary", r, len(classes), 0)
	}

	xs := mat.Col(nil, 0, X)
	ys := mat.Col(nil, 1, X)
	xlo, xhi := span(xs)
	ylo, yhi := span(ys)
	grid := newClassGrid([2]float64{xlo, xhi}, [2]float64{ylo, yhi}, gridSize, classify)

	k := 0
	for _, cl := range classes {
		if cl < 0 {
			return nil, errors.NewValueError("chart.DecisionBoundary", "class labels must be non-negative")
		}
		k = max(k, cl+1)
	}
	for _, z := range grid.z {
		k = max(k, int(z)+1)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	heat := plotter.NewHeatMap(grid, regionPalette(k))
	heat.Min, heat.Max = 0, float64(max(k-1, 1))
	p.Add(heat)

	perClass := make([]plotter.XYs, k)
	for i, cl := range classes {
		perClass[cl] = append(perClass[cl], plotter.XY{X: xs[i], Y: ys[i]})
	}
	for cl, pts := range perClass {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrap(err, "chart: adding samples")
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  plotutil.Color(cl),
			Shape:  plotutil.Shape(cl),
			Radius: vg.Points(3),
		}
		p.Add(s)
		p.Legend.Add("class "+strconv.Itoa(cl), s)
	}
	return p, nil
}

// RegressionLine plots the samples of a single-feature regression together
// with predict evaluated over their range.
func RegressionLine(title string, X, y mat.Matrix, predict func(x float64) float64) (*plot.Plot, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError("chart.RegressionLine")
	}
	if c != 1 {
		return nil, errors.NewDimensionError("chart.RegressionLine", 1, c, 1)
	}
	if yr, _ := y.Dims(); yr != r {
		return nil, errors.NewDimensionError("chart.RegressionLine", r, yr, 0)
	}

	pts := make(plotter.XYs, r)
	for i := range pts {
		pts[i] = plotter.XY{X: X.At(i, 0), Y: y.At(i, 0)}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	fit := plotter.NewFunction(predict)
	lo, hi := span(mat.Col(nil, 0, X))
	fit.XMin, fit.XMax = lo, hi
	fit.Samples = 200
	if err := plotutil.AddScatters(p, "samples", pts); err != nil {
		return nil, errors.Wrap(err, "chart: adding samples")
	}
	if err := plotutil.AddLines(p, "model", fit); err != nil {
		return nil, errors.Wrap(err, "chart: adding model")
	}
	return p, nil
}

// Save writes p to path at the default size. The format follows the file
// extension (.png, .svg, .pdf, ...).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "chart: saving %s", path)
	}
	return nil
}

// span returns the range of v widened by 10% on each side.
func span(v []float64) (lo, hi float64) {
	lo, hi = floats.Min(v), floats.Max(v)
	pad := 0.1 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

type classGrid struct {
	xs, ys []float64
	z      []float64 // row-major, len(ys)*len(xs)
}

func newClassGrid(xr, yr [2]float64, n int, classify func([]float64) int) *classGrid {
	g := &classGrid{
		xs: make([]float64, n),
		ys: make([]float64, n),
		z:  make([]float64, n*n),
	}
	floats.Span(g.xs, xr[0], xr[1])
	floats.Span(g.ys, yr[0], yr[1])

	point := make([]float64, 2)
	for r, y := range g.ys {
		for c, x := range g.xs {
			point[0], point[1] = x, y
			g.z[r*n+c] = float64(classify(point))
		}
	}
	return g
}

func (g *classGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g *classGrid) Z(c, r int) float64 { return g.z[r*len(g.xs)+c] }
func (g *classGrid) X(c int) float64    { return g.xs[c] }
func (g *classGrid) Y(r int) float64    { return g.ys[r] }

type colors []color.Color

func (p colors) Colors() []color.Color { return p }

// regionPalette returns the plotutil class colours, faded so the samples
// drawn on top stay visible.
func regionPalette(k int) palette.Palette {
	p := make(colors, max(k, 2))
	for i := range p {
		c := color.NRGBAModel.Convert(plotutil.Color(i)).(color.NRGBA)
		c.A = 60
		p[i] = c
	}
	return p
}
