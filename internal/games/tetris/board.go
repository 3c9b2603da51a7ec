package tetris

import "strings"

// Well dimensions. They are fixed for the lifetime of a game.
const (
	Width  = 10
	Height = 20
)

// Board is the well, indexed board[y][x] with row 0 at the top.
// Each cell holds PieceNone or the type of the piece that locked there.
// The zero value is an empty board.
type Board [Height][Width]PieceType

// At returns the cell at (x, y), or PieceNone outside the well.
func (b Board) At(x, y int) PieceType {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return PieceNone
	}
	return b[y][x]
}

// Occupied reports whether the cell at (x, y) holds a locked block.
func (b Board) Occupied(x, y int) bool {
	return b.At(x, y) != PieceNone
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for x := 0; x < Width; x++ {
		if b[y][x] == PieceNone {
			return false
		}
	}
	return true
}

// removeRow deletes row y, shifts every row above it down by one and
// inserts an empty row at the top.
func (b *Board) removeRow(y int) {
	for row := y; row > 0; row-- {
		b[row] = b[row-1]
	}
	b[0] = [Width]PieceType{}
}

// String renders the board one row per line using piece letters.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := 0; y < Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Width; x++ {
			sb.WriteString(b[y][x].String())
		}
	}
	return sb.String()
}
