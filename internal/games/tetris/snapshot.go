package tetris

import "time"

// Snapshot is a deep copy of everything a renderer or scoreboard needs.
// It shares no memory with the engine.
type Snapshot struct {
	State        State
	Board        Board
	Active       *ActivePiece
	Next         *NextPiece
	Stats        Stats
	DropInterval time.Duration
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:        e.state,
		Board:        e.board,
		Active:       e.Active(),
		Next:         e.Next(),
		Stats:        e.stats,
		DropInterval: e.dropInterval,
	}
}

// Cell returns what a renderer shows at (x, y): the active piece where it
// covers the cell, otherwise the locked board content.
func (s Snapshot) Cell(x, y int) PieceType {
	if a := s.Active; a != nil {
		px, py := x-a.X, y-a.Y
		if py >= 0 && py < a.Shape.Height() && px >= 0 && px < a.Shape.Width() && a.Shape[py][px] {
			return a.Type
		}
	}
	return s.Board.At(x, y)
}
