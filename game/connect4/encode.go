package connect4

// Encoding layout: three channels per cell (empty, X, O) in row-major order,
// then the player to move as (none, X, O).
const (
	CellChannels = 3
	BoardValues  = Rows * Cols * CellChannels
	EncodedLen   = BoardValues + CellChannels
)

// Encode returns the network input for the position with toMove to play.
// Every value is 0 or 1.
func Encode(b *Board, toMove Disc) []float64 {
	v := make([]float64, EncodedLen)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			v[(r*Cols+c)*CellChannels+int(b.cells[r][c])] = 1
		}
	}
	v[BoardValues+int(toMove)] = 1
	return v
}
