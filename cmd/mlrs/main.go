// Command mlrs runs the mlkit demos: perceptrons and linear regression on
// synthetic sets, MLP classification and regression, and Connect-Four
// dataset generation.
//
//	mlrs -demo mlp-classification -plots images -log-level debug
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

var demos = []string{
	"linear-classification",
	"linear-regression",
	"mlp-classification",
	"mlp-regression",
	"connect4-dataset",
}

func main() {
	var (
		demo    = flag.String("demo", "all", "demo to run: all, "+strings.Join(demos, ", "))
		plots   = flag.String("plots", "", "directory for PNG charts (disabled when empty)")
		level   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		format  = flag.String("log-format", "console", "log format: console or json")
		seed    = flag.Uint64("seed", 42, "seed for data generation and training")
		dataset = flag.String("dataset", "dataset.csv", "output path of connect4-dataset")
		games   = flag.Int("games", 4000, "self-play games for connect4-dataset")
		quick   = flag.Bool("quick", false, "divide MLP iteration counts by 100")
	)
	flag.Parse()

	if err := log.SetupLogger(*level, *format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	r := &runner{
		seed:    *seed,
		plots:   *plots,
		dataset: *dataset,
		games:   *games,
		quick:   *quick,
		logger:  log.GetLoggerWithName("mlrs"),
	}
	if err := r.run(*demo); err != nil {
		r.logger.Error("Demo failed", err, "demo", *demo)
		os.Exit(1)
	}
}

func (r *runner) run(demo string) error {
	if r.plots != "" {
		if err := os.MkdirAll(r.plots, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", r.plots)
		}
	}

	selected := demos
	if demo != "all" {
		selected = []string{demo}
	}
	runners := map[string]func() error{
		"linear-classification": r.linearClassification,
		"linear-regression":     r.linearRegression,
		"mlp-classification":    r.mlpClassification,
		"mlp-regression":        r.mlpRegression,
		"connect4-dataset":      r.connect4Dataset,
	}
	for _, name := range selected {
		fn, ok := runners[name]
		if !ok {
			return errors.NewValueError("mlrs", fmt.Sprintf("unknown demo %q", name))
		}
		if err := errors.SafeExecute(name, fn); err != nil {
			return errors.Wrapf(err, "demo %s", name)
		}
	}
	return nil
}
