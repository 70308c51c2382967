// Package connect4 implements the Connect-Four board used to produce training
// data for the move predictor: disc placement, win detection, legal moves and
// the 129-value position encoding.
package connect4

import (
	"strings"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Board dimensions.
const (
	Rows    = 6
	Cols    = 7
	Connect = 4
)

// Disc is the content of a cell.
type Disc uint8

const (
	Empty Disc = iota
	X          // moves first
	O
)

// Opponent returns the other player's disc. Empty has no opponent.
func (d Disc) Opponent() Disc {
	switch d {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (d Disc) String() string {
	switch d {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

// Board is a 6×7 grid. Row 0 is the top; discs fall towards row Rows-1.
type Board struct {
	cells [Rows][Cols]Disc
	moves int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Cell returns the disc at (row, col).
func (b *Board) Cell(row, col int) Disc {
	return b.cells[row][col]
}

// Moves returns the number of discs on the board.
func (b *Board) Moves() int {
	return b.moves
}

// Drop places d in col on the lowest empty cell and returns its row.
func (b *Board) Drop(col int, d Disc) (int, error) {
	if col < 0 || col >= Cols {
		return -1, errors.NewIndexError("connect4.Drop", "column", col, 0, Cols)
	}
	if d == Empty {
		return -1, errors.NewValueError("connect4.Drop", "cannot drop an empty disc")
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = d
			b.moves++
			return row, nil
		}
	}
	return -1, errors.NewValueError("connect4.Drop", "column is full")
}

// LegalMoves returns the columns whose top cell is empty, in increasing order.
func (b *Board) LegalMoves() []int {
	legal := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.cells[0][col] == Empty {
			legal = append(legal, col)
		}
	}
	return legal
}

// Full reports whether no disc can be dropped.
func (b *Board) Full() bool {
	return b.moves == Rows*Cols
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Wins reports whether the disc at (row, col) is part of a line of at least
// four equal discs.
func (b *Board) Wins(row, col int) bool {
	d := b.cells[row][col]
	if d == Empty {
		return false
	}
	for _, dir := range directions {
		n := 1 + b.run(row, col, dir[0], dir[1], d) + b.run(row, col, -dir[0], -dir[1], d)
		if n >= Connect {
			return true
		}
	}
	return false
}

func (b *Board) run(row, col, dr, dc int, d Disc) int {
	n := 0
	for r, c := row+dr, col+dc; r >= 0 && r < Rows && c >= 0 && c < Cols && b.cells[r][c] == d; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// String renders the board top row first with the column numbers underneath.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteString(b.cells[r][c].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("0123456\n")
	return sb.String()
}
