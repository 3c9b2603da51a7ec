package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietRules are the default rules without soft-drop points, so scores in
// tests come from line clears only.
func quietRules() Rules {
	r := DefaultRules()
	r.SoftDropPoints = 0
	return r
}

func newStartedEngine(t *testing.T, rules Rules, seq ...PieceType) *Engine {
	t.Helper()
	e := NewEngine(rules, NewSequenceRandomizer(seq...))
	e.Start()
	require.Equal(t, StateRunning, e.State())
	return e
}

// hardDrop moves the active piece down until it locks and returns the
// number of accepted moves.
func hardDrop(e *Engine) int {
	n := 0
	for e.MovePiece(0, 1) {
		n++
	}
	return n
}

func TestNewEngine(t *testing.T) {
	e := NewEngine(DefaultRules(), NewSequenceRandomizer(PieceT))

	assert.Equal(t, StateNotStarted, e.State())
	assert.Equal(t, Stats{Level: 1}, e.Stats())
	assert.Nil(t, e.Active())
	assert.Nil(t, e.Next())
	assert.Equal(t, time.Second, e.DropInterval())
}

func TestStartSpawnsCentered(t *testing.T) {
	tests := []struct {
		piece PieceType
		wantX int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 4},
		{PieceS, 4},
		{PieceZ, 4},
		{PieceJ, 4},
		{PieceL, 4},
	}

	for _, tt := range tests {
		t.Run(tt.piece.String(), func(t *testing.T) {
			e := newStartedEngine(t, DefaultRules(), tt.piece, PieceZ)

			a := e.Active()
			require.NotNil(t, a)
			assert.Equal(t, tt.piece, a.Type)
			assert.Equal(t, tt.wantX, a.X)
			assert.Equal(t, 0, a.Y)
			assert.True(t, a.Shape.Equal(BaseShape(tt.piece)))

			next := e.Next()
			require.NotNil(t, next)
			assert.Equal(t, PieceZ, next.Type)
		})
	}
}

func TestStartResetsState(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceO)
	e.board[Height-1][0] = PieceT
	e.stats = Stats{Score: 500, Level: 3, Lines: 25}
	e.dropInterval = 800 * time.Millisecond
	e.gameOver()

	e.Start()

	assert.Equal(t, StateRunning, e.State())
	assert.Equal(t, Stats{Score: 0, Level: 1, Lines: 0}, e.Stats())
	assert.Equal(t, Board{}, e.Board())
	assert.Equal(t, time.Second, e.DropInterval())
}

func TestStartIgnoredWhileRunning(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT, PieceO, PieceI)
	require.True(t, e.MovePiece(1, 0))

	e.Start()

	a := e.Active()
	assert.Equal(t, PieceT, a.Type)
	assert.Equal(t, 5, a.X)
}

func TestRestartMidGame(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT)
	e.board[Height-1][0] = PieceT
	e.stats.Score = 120
	e.TogglePause()
	require.Equal(t, StatePaused, e.State())

	e.Restart()

	assert.Equal(t, StateRunning, e.State())
	assert.Equal(t, 0, e.Stats().Score)
	assert.Equal(t, Board{}, e.Board())
	assert.Equal(t, 0, e.Active().Y)
}

func TestTogglePause(t *testing.T) {
	e := NewEngine(DefaultRules(), NewSequenceRandomizer(PieceT))
	e.TogglePause()
	assert.Equal(t, StateNotStarted, e.State(), "pause before start is ignored")

	e.Start()
	e.TogglePause()
	assert.Equal(t, StatePaused, e.State())

	assert.False(t, e.MovePiece(1, 0))
	assert.False(t, e.RotatePiece())
	e.Tick(10 * time.Second)
	assert.Equal(t, 0, e.Active().Y)
	assert.Equal(t, 4, e.Active().X)

	e.TogglePause()
	assert.Equal(t, StateRunning, e.State())
	assert.True(t, e.MovePiece(1, 0))
}

func TestCommandsBeforeStart(t *testing.T) {
	e := NewEngine(DefaultRules(), NewSequenceRandomizer(PieceT))

	assert.False(t, e.MovePiece(0, 1))
	assert.False(t, e.RotatePiece())
	e.Tick(time.Hour)

	assert.Equal(t, StateNotStarted, e.State())
	assert.Nil(t, e.Active())
}

func TestMovePieceSideways(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceO)

	moves := 0
	for e.MovePiece(-1, 0) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 0, e.Active().X)

	// Blocked sideways move does not lock the piece
	assert.Equal(t, 0, e.Active().Y)
	assert.Equal(t, PieceO, e.Active().Type)
	assert.Equal(t, Board{}, e.Board())

	moves = 0
	for e.MovePiece(1, 0) {
		moves++
	}
	assert.Equal(t, Width-2, moves)
	assert.Equal(t, Width-2, e.Active().X)
}

func TestSoftDropScoresAndLocks(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceO, PieceT)

	moves := hardDrop(e)

	assert.Equal(t, Height-2, moves)
	assert.Equal(t, Height-2, e.Stats().Score, "one point per accepted downward move")

	b := e.Board()
	for _, p := range []struct{ x, y int }{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.Equal(t, PieceO, b.At(p.x, p.y), "cell (%d,%d)", p.x, p.y)
	}

	a := e.Active()
	assert.Equal(t, PieceT, a.Type)
	assert.Equal(t, 0, a.Y)
	assert.Equal(t, StateRunning, e.State())
}

func TestRotatePiece(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT)

	require.True(t, e.RotatePiece())
	assert.True(t, e.Active().Shape.Equal(BaseShape(PieceT).Rotate()))
	assert.Equal(t, 4, e.Active().X)
	assert.Equal(t, 0, e.Active().Y)
}

func TestRotateRejectedByBlock(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceI)
	e.board[2][3] = PieceZ

	assert.False(t, e.RotatePiece())
	assert.True(t, e.Active().Shape.Equal(BaseShape(PieceI)))
	assert.Equal(t, 3, e.Active().X)
}

func TestRotateRejectedAtWall(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceI)
	require.True(t, e.RotatePiece())
	for e.MovePiece(1, 0) {
	}
	require.Equal(t, Width-1, e.Active().X)

	// No wall kick: the horizontal bar would stick out of the well
	assert.False(t, e.RotatePiece())
	assert.Equal(t, Width-1, e.Active().X)
	assert.Equal(t, 4, e.Active().Shape.Height())
}

func TestCheckCollision(t *testing.T) {
	e := NewEngine(DefaultRules(), NewSequenceRandomizer(PieceO))
	e.board[10][5] = PieceL
	o := BaseShape(PieceO)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"free", 0, 0, false},
		{"left wall", -1, 0, true},
		{"right wall", Width - 1, 0, true},
		{"floor", 0, Height - 1, true},
		{"resting on floor", 0, Height - 2, false},
		{"locked cell", 4, 9, true},
		{"beside locked cell", 6, 9, false},
		{"above the top", 0, -1, false},
		{"above the top past wall", -1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CheckCollision(tt.x, tt.y, o))
		})
	}
}

func TestActivePieceNeverCollides(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT, PieceI, PieceS, PieceL)
	moves := [][2]int{{-1, 0}, {1, 0}, {0, 1}, {1, 0}, {1, 0}, {0, 1}}

	for i := 0; i < 400 && e.State() == StateRunning; i++ {
		if i%5 == 0 {
			e.RotatePiece()
		} else {
			m := moves[i%len(moves)]
			e.MovePiece(m[0], m[1])
		}
		if e.State() != StateRunning {
			break
		}
		a := e.Active()
		require.False(t, e.CheckCollision(a.X, a.Y, a.Shape), "step %d", i)
	}
}

func TestClearSingleLine(t *testing.T) {
	e := newStartedEngine(t, quietRules(), PieceI)
	fillRow(&e.board, Height-1, PieceJ, 3, 4, 5, 6)
	e.board[Height-2][0] = PieceS

	hardDrop(e)

	assert.Equal(t, Stats{Score: 100, Level: 1, Lines: 1}, e.Stats())
	b := e.Board()
	assert.Equal(t, PieceS, b.At(0, Height-1), "rows above shift down")
	assert.False(t, b.RowFull(Height-1))
}

func TestClearTwoLines(t *testing.T) {
	e := newStartedEngine(t, quietRules(), PieceO)
	fillRow(&e.board, Height-1, PieceJ, 4, 5)
	fillRow(&e.board, Height-2, PieceJ, 4, 5)

	hardDrop(e)

	assert.Equal(t, Stats{Score: 300, Level: 1, Lines: 2}, e.Stats())
	assert.Equal(t, Board{}, e.Board())
}

func TestClearFourLines(t *testing.T) {
	e := newStartedEngine(t, quietRules(), PieceI)
	require.True(t, e.RotatePiece())
	for y := Height - 4; y < Height; y++ {
		fillRow(&e.board, y, PieceL, 3)
	}

	hardDrop(e)

	assert.Equal(t, Stats{Score: 800, Level: 1, Lines: 4}, e.Stats())
	assert.Equal(t, Board{}, e.Board())
}

func TestClearLinesAdjacentRows(t *testing.T) {
	e := NewEngine(quietRules(), NewSequenceRandomizer(PieceO))
	e.state = StateRunning
	fillRow(&e.board, Height-1, PieceI)
	fillRow(&e.board, Height-2, PieceI)
	e.board[Height-3][2] = PieceT
	fillRow(&e.board, Height-4, PieceI)

	cleared := e.clearLines()

	assert.Equal(t, 3, cleared)
	assert.Equal(t, PieceT, e.board[Height-1][2])
	for y := 0; y < Height-1; y++ {
		assert.Equal(t, [Width]PieceType{}, e.board[y], "row %d", y)
	}
	assert.Equal(t, 500, e.Stats().Score)
}

func TestScoreUsesLevelBeforeClear(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		level     int
		wantScore int
		wantLevel int
		wantDrop  time.Duration
	}{
		{"reach level 2", 9, 1, 100, 2, 900 * time.Millisecond},
		{"reach level 3", 19, 2, 200, 3, 800 * time.Millisecond},
		{"reach level 4", 29, 3, 300, 4, 700 * time.Millisecond},
		{"stay on level 2", 10, 2, 200, 2, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newStartedEngine(t, quietRules(), PieceI)
			e.stats.Lines = tt.lines
			e.stats.Level = tt.level
			fillRow(&e.board, Height-1, PieceJ, 3, 4, 5, 6)

			hardDrop(e)

			s := e.Stats()
			assert.Equal(t, tt.wantScore, s.Score)
			assert.Equal(t, tt.lines+1, s.Lines)
			assert.Equal(t, tt.wantLevel, s.Level)
			assert.Equal(t, tt.wantDrop, e.DropInterval())
		})
	}
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceO)
	var got []int
	e.OnGameOver(func(finalScore int) { got = append(got, finalScore) })

	e.stats.Score = 42
	e.board[2][4] = PieceT

	assert.False(t, e.MovePiece(0, 1))

	assert.Equal(t, StateOver, e.State())
	assert.Equal(t, []int{42}, got)
	assert.Equal(t, Stats{Score: 42, Level: 1, Lines: 0}, e.Stats())

	// Nothing moves after the game ended
	assert.False(t, e.MovePiece(-1, 0))
	assert.False(t, e.RotatePiece())
	e.TogglePause()
	assert.Equal(t, StateOver, e.State())
	e.Tick(time.Hour)
	assert.Equal(t, []int{42}, got)
}

func TestTickThreshold(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT)

	e.Tick(time.Second)
	assert.Equal(t, 0, e.Active().Y, "reaching the interval exactly is not enough")

	e.Tick(time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)

	// The timer restarts from zero after a fall
	e.Tick(999 * time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)
	e.Tick(2 * time.Millisecond)
	assert.Equal(t, 2, e.Active().Y)
}

func TestTickFallScores(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT)

	e.Tick(1500 * time.Millisecond)

	assert.Equal(t, 1, e.Stats().Score)
}

func TestCallbacks(t *testing.T) {
	e := NewEngine(quietRules(), NewSequenceRandomizer(PieceO, PieceT, PieceS))
	var spawned []PieceType
	var stats []Stats
	e.OnSpawn(func(p NextPiece) { spawned = append(spawned, p.Type) })
	e.OnStats(func(s Stats) { stats = append(stats, s) })

	e.Start()
	fillRow(&e.board, Height-1, PieceJ, 4, 5)
	hardDrop(e)

	assert.Equal(t, []PieceType{PieceT, PieceS}, spawned)
	require.Len(t, stats, 2)
	assert.Equal(t, Stats{Level: 1}, stats[0])
	assert.Equal(t, Stats{Score: 100, Level: 1, Lines: 1}, stats[1])
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT, PieceL)

	snap := e.Snapshot()
	snap.Active.Shape[0][0] = true
	snap.Active.X = 0
	snap.Next.Shape[0][0] = true
	snap.Board[0][0] = PieceZ

	assert.True(t, e.Active().Shape.Equal(BaseShape(PieceT)))
	assert.Equal(t, 4, e.Active().X)
	assert.True(t, e.Next().Shape.Equal(BaseShape(PieceL)))
	assert.Equal(t, PieceNone, e.Board().At(0, 0))
}

func TestSnapshotCell(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceT)
	e.board[Height-1][0] = PieceI

	snap := e.Snapshot()

	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, PieceT, snap.Cell(5, 0))
	assert.Equal(t, PieceNone, snap.Cell(4, 0), "empty corner of the T")
	assert.Equal(t, PieceT, snap.Cell(4, 1))
	assert.Equal(t, PieceI, snap.Cell(0, Height-1))
	assert.Equal(t, PieceNone, snap.Cell(-1, 0))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_started", StateNotStarted.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "over", StateOver.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestBoardQueriesChainOnCopy(t *testing.T) {
	e := newStartedEngine(t, DefaultRules(), PieceO)
	fillRow(&e.board, Height-1, PieceS)
	e.board[Height-2][3] = PieceJ

	assert.Equal(t, PieceJ, e.Board().At(3, Height-2))
	assert.True(t, e.Board().Occupied(3, Height-2))
	assert.True(t, e.Board().RowFull(Height-1))
	assert.False(t, e.Board().RowFull(Height-2))
	assert.Contains(t, e.Board().String(), "SSSSSSSSSS")
	assert.Equal(t, PieceJ, e.Snapshot().Board.At(3, Height-2))
}

func TestPlacePieceDropsCellsAboveTop(t *testing.T) {
	tests := []struct {
		name  string
		piece PieceType
		x     int
		row0  string
	}{
		{"J", PieceJ, 0, "JJJ......."},
		{"T", PieceT, 4, "....TTT..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultRules(), NewSequenceRandomizer(tt.piece))
			e.active = &ActivePiece{Type: tt.piece, Shape: BaseShape(tt.piece), X: tt.x, Y: -1}

			require.NotPanics(t, e.placePiece)

			b := e.Board()
			lines := strings.Split(b.String(), "\n")
			assert.Equal(t, tt.row0, lines[0])
			for y := 1; y < Height; y++ {
				assert.Equal(t, "..........", lines[y], "row %d", y)
			}
		})
	}
}

// invalidRandomizer returns a piece type outside the seven.
type invalidRandomizer struct{}

func (invalidRandomizer) NextPieceType() PieceType { return PieceType(99) }

func TestSpawnReplacesInvalidPieces(t *testing.T) {
	e := NewEngine(DefaultRules(), invalidRandomizer{})
	e.Start()

	require.Equal(t, StateRunning, e.State())
	assert.Equal(t, PieceI, e.Active().Type)
	assert.Equal(t, PieceI, e.Next().Type)
}
