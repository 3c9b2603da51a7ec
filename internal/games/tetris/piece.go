// Package tetris implements the falling-block rules engine: pieces,
// collision, rotation, locking, line clearing and score/level progression,
// plus the adapter that runs it on the terminal platform.
package tetris

import (
	"fmt"
	"strings"
)

// PieceType tags a piece and the board cells it leaves behind.
// The zero value PieceNone marks an empty cell.
type PieceType uint8

const (
	PieceNone PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

var pieceTypes = []PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// PieceTypes returns the seven piece types in canonical order.
func PieceTypes() []PieceType {
	out := make([]PieceType, len(pieceTypes))
	copy(out, pieceTypes)
	return out
}

// String returns the piece letter, or "." for an empty cell.
func (p PieceType) String() string {
	switch p {
	case PieceNone:
		return "."
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return fmt.Sprintf("PieceType(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the seven pieces.
func (p PieceType) Valid() bool {
	return p >= PieceI && p <= PieceL
}

// ParsePieceType resolves a piece letter, case-insensitively.
func ParsePieceType(s string) (PieceType, error) {
	for _, p := range pieceTypes {
		if strings.EqualFold(p.String(), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return PieceNone, fmt.Errorf("tetris: unknown piece %q", s)
}

// Shape is the occupancy matrix of a piece in its current rotation,
// indexed shape[y][x].
type Shape [][]bool

// Canonical spawn orientation of every piece. Rotations are computed from
// these on demand.
var baseShapes = map[PieceType]Shape{
	PieceI: {
		{true, true, true, true},
	},
	PieceO: {
		{true, true},
		{true, true},
	},
	PieceT: {
		{false, true, false},
		{true, true, true},
	},
	PieceS: {
		{false, true, true},
		{true, true, false},
	},
	PieceZ: {
		{true, true, false},
		{false, true, true},
	},
	PieceJ: {
		{true, false, false},
		{true, true, true},
	},
	PieceL: {
		{false, false, true},
		{true, true, true},
	},
}

// BaseShape returns a fresh copy of the spawn shape for p.
// It returns nil for PieceNone or an unknown type.
func BaseShape(p PieceType) Shape {
	return baseShapes[p].Clone()
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Point is a column/row offset.
type Point struct {
	X, Y int
}

// Cells returns the offsets of all occupied cells, row by row.
func (s Shape) Cells() []Point {
	var cells []Point
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Rotate returns the shape turned 90 degrees clockwise:
// rotated[x][rows-1-y] = shape[y][x]. The receiver is left untouched.
func (s Shape) Rotate() Shape {
	rows := s.Height()
	cols := s.Width()

	rotated := make(Shape, cols)
	for x := range rotated {
		rotated[x] = make([]bool, rows)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			rotated[x][rows-1-y] = s[y][x]
		}
	}
	return rotated
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = make([]bool, len(row))
		copy(out[y], row)
	}
	return out
}

// Equal reports whether two shapes have the same size and occupancy.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' for occupied and '.' for empty cells.
func (s Shape) String() string {
	var sb strings.Builder
	for y, row := range s {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
