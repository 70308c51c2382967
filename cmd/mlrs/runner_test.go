package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

func newTestRunner(t *testing.T) *runner {
	t.Helper()
	dir := t.TempDir()
	return &runner{
		seed:    42,
		plots:   filepath.Join(dir, "images"),
		dataset: filepath.Join(dir, "dataset.csv"),
		games:   5,
		quick:   true,
		logger:  log.NewNopLogger(),
	}
}

func TestRunLinearRegressionWritesCharts(t *testing.T) {
	r := newTestRunner(t)
	require.NoError(t, r.run("linear-regression"))

	for _, name := range []string{"regression_1d_curve.png", "regression_1d_fit.png", "regression_2d_curve.png"} {
		_, err := os.Stat(filepath.Join(r.plots, name))
		assert.NoError(t, err, name)
	}
}

func TestRunMLPRegression(t *testing.T) {
	r := newTestRunner(t)
	r.plots = ""
	require.NoError(t, r.run("mlp-regression"))
}

func TestRunConnect4Dataset(t *testing.T) {
	r := newTestRunner(t)
	require.NoError(t, r.run("connect4-dataset"))

	X, _, err := dataset.LoadConnect4File(r.dataset)
	require.NoError(t, err)
	_, c := X.Dims()
	assert.Equal(t, dataset.InputDim, c)
}

func TestRunUnknownDemo(t *testing.T) {
	r := newTestRunner(t)
	assert.Error(t, r.run("nope"))
}

func TestQuickIterations(t *testing.T) {
	r := &runner{quick: true}
	assert.Equal(t, 500, r.iterations(50_000))
	assert.Equal(t, 1, r.iterations(10))

	r.quick = false
	assert.Equal(t, 10, r.iterations(10))
}
