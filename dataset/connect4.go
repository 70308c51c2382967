package dataset

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// Connect-Four block layout.
const (
	BoardRows    = 6
	BoardCols    = 7
	CellChannels = 3 // empty, first player, second player

	BoardValues = BoardRows * BoardCols * CellChannels // 126
	MetaValues  = 4                                    // p0, p1, p2, column
	InputDim    = BoardValues + MetaValues - 1         // 129
	OutputDim   = BoardCols
	BlockLines  = BoardRows + 1
)

// LoadConnect4 reads Connect-Four samples in block format: six board rows of
// 21 comma-separated numbers followed by a metadata row "p0,p1,p2,column",
// blocks separated by blank lines. X is n×129 (board values then p0,p1,p2)
// and Y is n×7 with +1 at the played column and -1 elsewhere.
//
// Malformed blocks are skipped. Reading fails only on I/O errors or when no
// block is usable.
func LoadConnect4(r io.Reader) (X, Y *mat.Dense, err error) {
	start := time.Now()
	logger := log.GetLoggerWithName("dataset.connect4")

	var (
		inputs  []float64
		targets []float64
		block   []string
		blocks  int
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		blocks++
		if in, out, ok := parseBlock(block); ok {
			inputs = append(inputs, in...)
			targets = append(targets, out...)
		}
		block = block[:0]
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "dataset: reading connect-four blocks")
	}
	flush()

	n := len(targets) / OutputDim
	if n == 0 {
		return nil, nil, errors.NewEmptyDataError("dataset.LoadConnect4")
	}

	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, n,
		"blocks", blocks,
		"skipped", blocks-n,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return mat.NewDense(n, InputDim, inputs), mat.NewDense(n, OutputDim, targets), nil
}

// LoadConnect4File opens path and reads it with LoadConnect4.
func LoadConnect4File(path string) (X, Y *mat.Dense, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: opening %s", path)
	}
	defer f.Close()

	X, Y, err = LoadConnect4(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: loading %s", path)
	}
	return X, Y, nil
}

func parseBlock(lines []string) (input, target []float64, ok bool) {
	if len(lines) != BlockLines {
		return nil, nil, false
	}

	input = make([]float64, 0, InputDim)
	for _, row := range lines[:BoardRows] {
		for _, tok := range strings.Split(row, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, nil, false
			}
			input = append(input, v)
		}
	}
	if len(input) != BoardValues {
		return nil, nil, false
	}

	// unparseable metadata tokens are dropped rather than rejecting the block
	meta := make([]float64, 0, MetaValues)
	for _, tok := range strings.Split(lines[BoardRows], ",") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64); err == nil {
			meta = append(meta, v)
		}
	}
	if len(meta) != MetaValues {
		return nil, nil, false
	}

	col := math.Trunc(meta[3])
	if math.IsNaN(col) || col < 0 || col >= OutputDim {
		return nil, nil, false
	}

	input = append(input, meta[:3]...)
	target = make([]float64, OutputDim)
	for c := range target {
		target[c] = -1
	}
	target[int(col)] = 1
	return input, target, true
}
