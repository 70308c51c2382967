package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Sizes used by the demos.
const (
	DefaultClusterSize = 50
	DefaultCrossSize   = 500
	DefaultThreeClass  = 500
	DefaultMultiCross  = 1000
)

// LinearSimple returns three linearly separable points labelled ±1.
func LinearSimple() (X, y *mat.Dense) {
	X = mat.NewDense(3, 2, []float64{
		1, 1,
		2, 3,
		3, 3,
	})
	y = mat.NewDense(3, 1, []float64{1, -1, -1})
	return X, y
}

// XOR returns the four XOR corners labelled ±1. No line separates them.
func XOR() (X, y *mat.Dense) {
	X = mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		0, 0,
		1, 1,
	})
	y = mat.NewDense(4, 1, []float64{1, 1, -1, -1})
	return X, y
}

// TwoClusters draws n points uniformly from [1, 1.9)² labelled +1 followed by
// n points from [2, 2.9)² labelled -1.
func TwoClusters(seq *random.Sequence, n int) (X, y *mat.Dense, err error) {
	if n <= 0 {
		return nil, nil, errors.NewValidationError("n", "must be positive", n)
	}

	X = mat.NewDense(2*n, 2, nil)
	y = mat.NewDense(2*n, 1, nil)
	for i := 0; i < 2*n; i++ {
		low, label := 1.0, 1.0
		if i >= n {
			low, label = 2.0, -1.0
		}
		X.Set(i, 0, seq.Uniform(low, low+0.9))
		X.Set(i, 1, seq.Uniform(low, low+0.9))
		y.Set(i, 0, label)
	}
	return X, y, nil
}

// Cross draws n points uniformly from [-1, 1)². A point is +1 when it lies in
// the horizontal or vertical band of half-width 0.3 around the axes, -1
// otherwise.
func Cross(seq *random.Sequence, n int) (X, y *mat.Dense, err error) {
	if n <= 0 {
		return nil, nil, errors.NewValidationError("n", "must be positive", n)
	}

	X = mat.NewDense(n, 2, nil)
	y = mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x1, x2 := seq.Uniform(-1, 1), seq.Uniform(-1, 1)
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		if math.Abs(x1) <= 0.3 || math.Abs(x2) <= 0.3 {
			y.Set(i, 0, 1)
		} else {
			y.Set(i, 0, -1)
		}
	}
	return X, y, nil
}

// ThreeClassLinear returns n points of [-1, 1)² split into three regions by
// the lines y = -x - 0.5, y = 0 and y = x - 0.5. Points that fall in none of
// the three regions are redrawn. Y is n×3 with +1 in the class column and -1
// elsewhere.
func ThreeClassLinear(seq *random.Sequence, n int) (X, Y *mat.Dense, err error) {
	if n <= 0 {
		return nil, nil, errors.NewValidationError("n", "must be positive", n)
	}

	X = mat.NewDense(n, 2, nil)
	Y = mat.NewDense(n, 3, nil)
	for i := 0; i < n; {
		x1, x2 := seq.Uniform(-1, 1), seq.Uniform(-1, 1)
		class := threeClassRegion(x1, x2)
		if class < 0 {
			continue
		}
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		setOneHot(Y, i, class)
		i++
	}
	return X, Y, nil
}

func threeClassRegion(x, y float64) int {
	v1 := -x - y - 0.5
	v2 := x - y - 0.5
	switch {
	case v1 > 0 && y < 0 && v2 < 0:
		return 0
	case v1 < 0 && y > 0 && v2 < 0:
		return 1
	case v1 < 0 && y < 0 && v2 > 0:
		return 2
	}
	return -1
}

// ThreeClassCross returns n points of [-1, 1)² labelled by a checkerboard of
// 0.25-wide cells. Y is n×3 with ±1 one-hot rows. The classes are not
// linearly separable.
func ThreeClassCross(seq *random.Sequence, n int) (X, Y *mat.Dense, err error) {
	if n <= 0 {
		return nil, nil, errors.NewValidationError("n", "must be positive", n)
	}

	X = mat.NewDense(n, 2, nil)
	Y = mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		x1, x2 := seq.Uniform(-1, 1), seq.Uniform(-1, 1)
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		setOneHot(Y, i, crossCell(x1, x2))
	}
	return X, Y, nil
}

func crossCell(x, y float64) int {
	xm := math.Abs(math.Mod(x, 0.5))
	ym := math.Abs(math.Mod(y, 0.5))
	switch {
	case xm <= 0.25 && ym > 0.25:
		return 0
	case xm > 0.25 && ym <= 0.25:
		return 1
	}
	return 2
}

func setOneHot(Y *mat.Dense, i, class int) {
	_, k := Y.Dims()
	for c := 0; c < k; c++ {
		if c == class {
			Y.Set(i, c, 1)
		} else {
			Y.Set(i, c, -1)
		}
	}
}

// Regression1D returns two points on y = x + 1.
func Regression1D() (X, y *mat.Dense) {
	return mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 1, []float64{2, 3})
}

// Regression2D returns three points in the plane with targets a plane can
// interpolate exactly.
func Regression2D() (X, y *mat.Dense) {
	X = mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 1,
	})
	return X, mat.NewDense(3, 1, []float64{2, 3, 2.5})
}

// Collinear returns three points on the diagonal x1 = x2 with y = x1. The
// weights are not uniquely determined.
func Collinear() (X, y *mat.Dense) {
	X = mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
	})
	return X, mat.NewDense(3, 1, []float64{1, 2, 3})
}

// NonLinear1D returns three points that no line fits: the middle one is the
// highest.
func NonLinear1D() (X, y *mat.Dense) {
	return mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(3, 1, []float64{2, 3, 2.5})
}

// NonLinear2D returns the XOR corners with real-valued targets.
func NonLinear2D() (X, y *mat.Dense) {
	X = mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		0, 0,
	})
	return X, mat.NewDense(4, 1, []float64{2, 1, -2, -1})
}

// Line samples n evenly spaced points of y = slope*x + intercept on [lo, hi].
func Line(n int, lo, hi, slope, intercept float64) (X, y *mat.Dense, err error) {
	if n < 2 {
		return nil, nil, errors.NewValidationError("n", "need at least two points", n)
	}
	X = mat.NewDense(n, 1, nil)
	y = mat.NewDense(n, 1, nil)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		X.Set(i, 0, x)
		y.Set(i, 0, slope*x+intercept)
	}
	return X, y, nil
}
