package tetris

import "time"

// State is the lifecycle phase of a game.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Stats are the scoreboard counters.
type Stats struct {
	Score int
	Level int
	Lines int
}

// ActivePiece is the falling piece. X and Y locate the top-left corner of
// its shape on the board; Y may be negative while the piece enters the well.
type ActivePiece struct {
	Type  PieceType
	Shape Shape
	X, Y  int
}

// NextPiece is the lookahead piece shown in the preview.
type NextPiece struct {
	Type  PieceType
	Shape Shape
}

// Engine owns the complete state of one game and applies the rules.
//
// It is not safe for concurrent use: the driver delivers input and ticks
// from a single goroutine, and every method runs to completion.
// Commands issued in the wrong state are ignored rather than reported.
type Engine struct {
	rules Rules
	rand  Randomizer

	board  Board
	active *ActivePiece
	next   *NextPiece
	stats  Stats
	state  State

	dropInterval time.Duration
	dropCounter  time.Duration

	onGameOver func(finalScore int)
	onStats    func(Stats)
	onSpawn    func(NextPiece)
}

// NewEngine creates an engine in the NotStarted state.
func NewEngine(rules Rules, r Randomizer) *Engine {
	return &Engine{
		rules:        rules,
		rand:         r,
		stats:        Stats{Level: 1},
		dropInterval: rules.InitialDrop,
	}
}

// OnGameOver registers the callback fired when a spawn collides.
func (e *Engine) OnGameOver(fn func(finalScore int)) {
	e.onGameOver = fn
}

// OnStats registers the callback fired whenever score, level or lines change.
func (e *Engine) OnStats(fn func(Stats)) {
	e.onStats = fn
}

// OnSpawn registers the callback fired when a new next piece is drawn.
func (e *Engine) OnSpawn(fn func(NextPiece)) {
	e.onSpawn = fn
}

// Start begins a new game from NotStarted or Over. It is a no-op while a
// game is running or paused.
func (e *Engine) Start() {
	if e.state == StateRunning || e.state == StatePaused {
		return
	}

	e.board = Board{}
	e.stats = Stats{Score: 0, Level: 1, Lines: 0}
	e.dropInterval = e.rules.InitialDrop
	e.dropCounter = 0
	e.active = nil
	e.next = nil
	e.state = StateRunning

	e.notifyStats()
	e.spawnPiece()
}

// Restart abandons the current game, whatever its state, and starts a new one.
func (e *Engine) Restart() {
	e.state = StateNotStarted
	e.Start()
}

// TogglePause flips between Running and Paused.
func (e *Engine) TogglePause() {
	switch e.state {
	case StateRunning:
		e.state = StatePaused
	case StatePaused:
		e.state = StateRunning
	}
}

// spawnPiece promotes the next piece to active, centered at the top of the
// well, and draws a new next piece. A spawn that collides ends the game.
func (e *Engine) spawnPiece() {
	var typ PieceType
	if e.next != nil {
		typ = e.next.Type
	} else {
		typ = e.draw()
	}

	shape := BaseShape(typ)
	e.active = &ActivePiece{
		Type:  typ,
		Shape: shape,
		X:     Width/2 - shape.Width()/2,
		Y:     0,
	}

	nextType := e.draw()
	e.next = &NextPiece{Type: nextType, Shape: BaseShape(nextType)}
	if e.onSpawn != nil {
		e.onSpawn(NextPiece{Type: nextType, Shape: e.next.Shape.Clone()})
	}

	if e.CheckCollision(e.active.X, e.active.Y, e.active.Shape) {
		e.gameOver()
	}
}

// draw asks the randomizer for a piece. Anything that is not one of the
// seven pieces is replaced by an I.
func (e *Engine) draw() PieceType {
	if p := e.rand.NextPieceType(); p.Valid() {
		return p
	}
	return PieceI
}

func (e *Engine) gameOver() {
	e.state = StateOver
	if e.onGameOver != nil {
		e.onGameOver(e.stats.Score)
	}
}

// MovePiece translates the active piece by (dx, dy) and reports whether the
// move was accepted. A blocked downward move locks the piece, resolves
// cleared rows and spawns the next piece. Blocked sideways moves do nothing.
func (e *Engine) MovePiece(dx, dy int) bool {
	if e.state != StateRunning || e.active == nil {
		return false
	}

	nx, ny := e.active.X+dx, e.active.Y+dy
	if !e.CheckCollision(nx, ny, e.active.Shape) {
		e.active.X = nx
		e.active.Y = ny
		if dy > 0 && e.rules.SoftDropPoints > 0 {
			e.stats.Score += e.rules.SoftDropPoints
			e.notifyStats()
		}
		return true
	}

	if dy > 0 {
		e.placePiece()
		e.clearLines()
		e.spawnPiece()
	}
	return false
}

// RotatePiece turns the active piece clockwise in place. The rotation is
// rejected, without any kick, if the turned shape would collide.
func (e *Engine) RotatePiece() bool {
	if e.state != StateRunning || e.active == nil {
		return false
	}

	rotated := e.active.Shape.Rotate()
	if e.CheckCollision(e.active.X, e.active.Y, rotated) {
		return false
	}
	e.active.Shape = rotated
	return true
}

// CheckCollision reports whether shape placed with its top-left corner at
// (x, y) leaves the well sideways, passes the floor, or overlaps a locked
// cell. Cells above the top row only count against the side walls.
func (e *Engine) CheckCollision(x, y int, shape Shape) bool {
	for py, row := range shape {
		for px, filled := range row {
			if !filled {
				continue
			}
			bx, by := x+px, y+py
			if bx < 0 || bx >= Width || by >= Height {
				return true
			}
			if e.board.Occupied(bx, by) {
				return true
			}
		}
	}
	return false
}

// placePiece writes the active piece into the board. Cells above the top
// row are dropped.
func (e *Engine) placePiece() {
	if e.active == nil {
		return
	}
	for _, c := range e.active.Shape.Cells() {
		bx, by := e.active.X+c.X, e.active.Y+c.Y
		if by < 0 || by >= Height || bx < 0 || bx >= Width {
			continue
		}
		e.board[by][bx] = e.active.Type
	}
}

// clearLines removes every full row, scanning from the bottom up, and
// returns how many were removed. After a removal the same row index is
// examined again because the row above has moved into it.
func (e *Engine) clearLines() int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if e.board.RowFull(y) {
			e.board.removeRow(y)
			cleared++
			continue
		}
		y--
	}

	if cleared > 0 {
		e.stats.Lines += cleared
		e.stats.Score += e.rules.Points(cleared, e.stats.Level)
		e.stats.Level = e.rules.LevelFor(e.stats.Lines)
		e.dropInterval = e.rules.DropInterval(e.stats.Level)
		e.notifyStats()
	}
	return cleared
}

// Tick feeds elapsed time into the drop timer. Once the accumulated time
// exceeds the drop interval the piece falls one row and the timer restarts
// from zero. Ticks outside the Running state are ignored.
func (e *Engine) Tick(elapsed time.Duration) {
	if e.state != StateRunning {
		return
	}
	e.dropCounter += elapsed
	if e.dropCounter > e.dropInterval {
		e.MovePiece(0, 1)
		e.dropCounter = 0
	}
}

func (e *Engine) notifyStats() {
	if e.onStats != nil {
		e.onStats(e.stats)
	}
}

// State returns the lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// Stats returns the scoreboard counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Board returns a copy of the locked cells.
func (e *Engine) Board() Board {
	return e.board
}

// Active returns a copy of the falling piece, or nil before the first spawn.
func (e *Engine) Active() *ActivePiece {
	if e.active == nil {
		return nil
	}
	a := *e.active
	a.Shape = e.active.Shape.Clone()
	return &a
}

// Next returns a copy of the preview piece, or nil before the first spawn.
func (e *Engine) Next() *NextPiece {
	if e.next == nil {
		return nil
	}
	return &NextPiece{Type: e.next.Type, Shape: e.next.Shape.Clone()}
}

// DropInterval returns the current automatic fall interval.
func (e *Engine) DropInterval() time.Duration {
	return e.dropInterval
}
