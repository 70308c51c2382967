package connect4

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/YuminosukeSato/mlkit/core/random"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

// SelfPlayConfig controls random self-play dataset generation.
type SelfPlayConfig struct {
	Games int
	// CentreBias is the probability of playing column 3 whenever it is legal.
	CentreBias float64
	Seed       uint64
}

// DefaultSelfPlayConfig returns 4000 games, a 0.35 centre bias and seed 42.
func DefaultSelfPlayConfig() SelfPlayConfig {
	return SelfPlayConfig{Games: 4000, CentreBias: 0.35, Seed: 42}
}

// Sample is one recorded position: the encoded state before the move and the
// column that was played.
type Sample struct {
	Input  []float64
	Column int
}

// SelfPlay plays cfg.Games random games and calls emit for every position
// before the move is made. A game ends on a win or a full board.
func SelfPlay(cfg SelfPlayConfig, emit func(Sample) error) error {
	if cfg.Games <= 0 {
		return errors.NewValidationError("games", "must be positive", cfg.Games)
	}
	if cfg.CentreBias < 0 || cfg.CentreBias > 1 {
		return errors.NewValidationError("centre_bias", "must be in [0, 1]", cfg.CentreBias)
	}

	seq := random.New(cfg.Seed)
	for g := 0; g < cfg.Games; g++ {
		board := NewBoard()
		player := X
		for {
			legal := board.LegalMoves()
			if len(legal) == 0 {
				break
			}

			col := chooseMove(seq, legal, cfg.CentreBias)
			if err := emit(Sample{Input: Encode(board, player), Column: col}); err != nil {
				return err
			}

			row, err := board.Drop(col, player)
			if err != nil {
				return err
			}
			if board.Wins(row, col) {
				break
			}
			player = player.Opponent()
		}
	}
	return nil
}

const centre = Cols / 2

func chooseMove(seq *random.Sequence, legal []int, bias float64) int {
	for _, col := range legal {
		if col == centre && seq.Float64() < bias {
			return centre
		}
	}
	return legal[seq.Index(len(legal))]
}

// WriteDataset writes self-play samples in block format: six rows of 21 cell
// values, a "p0,p1,p2,column" row and a blank line. It returns the number of
// samples written.
func WriteDataset(w io.Writer, cfg SelfPlayConfig) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	buf := make([]byte, 0, 64)

	err := SelfPlay(cfg, func(s Sample) error {
		for r := 0; r < Rows; r++ {
			row := s.Input[r*Cols*CellChannels : (r+1)*Cols*CellChannels]
			buf = appendValues(buf[:0], row)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		buf = appendValues(buf[:0], s.Input[BoardValues:])
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(s.Column), 10)
		buf = append(buf, '\n', '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, errors.Wrap(err, "connect4: writing dataset")
	}
	if err := bw.Flush(); err != nil {
		return n, errors.Wrap(err, "connect4: writing dataset")
	}
	return n, nil
}

// WriteDatasetFile creates path and fills it with WriteDataset.
func WriteDatasetFile(path string, cfg SelfPlayConfig) (int, error) {
	start := time.Now()
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "connect4: creating %s", path)
	}

	n, err := WriteDataset(f, cfg)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "connect4: closing %s", path)
	}
	if err != nil {
		return n, err
	}

	log.GetLoggerWithName("connect4.selfplay").Info("Dataset written",
		log.PathKey, path,
		"games", cfg.Games,
		log.SamplesKey, n,
		log.RandomSeedKey, cfg.Seed,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return n, nil
}

func appendValues(buf []byte, values []float64) []byte {
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return buf
}
