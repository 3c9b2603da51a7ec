package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game runs the engine on the terminal platform. Each Step is one fixed
// platform tick: input is applied first, then the drive loop advances a
// virtual clock by one tick length. Runs are reproducible for a given seed
// and input sequence.
type Game struct {
	rules  Rules
	colors map[PieceType]core.Color

	engine *Engine
	loop   *Loop
	now    time.Time
	frame  time.Duration

	screenW  int
	screenH  int
	tooSmall bool

	finalScore int
	onGameOver func(finalScore int)
}

// New creates a game using the given configuration.
func New(cfg config.TetrisConfig) *Game {
	colors := make(map[PieceType]core.Color, len(pieceTypes))
	for _, p := range pieceTypes {
		colors[p] = cfg.PieceColor(p.String())
	}

	return &Game{
		rules:  RulesFromConfig(cfg),
		colors: colors,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset builds a fresh engine. The game waits in the not-started state
// until it receives ActionConfirm.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	g.engine = NewEngine(g.rules, NewUniformRandomizer(cfg.Seed))
	g.engine.OnGameOver(g.handleGameOver)
	g.loop = NewLoop(g.engine)
	g.now = time.Unix(0, 0)
	g.frame = time.Second / time.Duration(tickRate)
	g.finalScore = 0

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without touching the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < minScreenW || height < minScreenH
}

// SetGameOverHandler registers a callback invoked with the final score when
// a game ends.
func (g *Game) SetGameOverHandler(fn func(finalScore int)) {
	g.onGameOver = fn
}

func (g *Game) handleGameOver(finalScore int) {
	g.finalScore = finalScore
	if g.onGameOver != nil {
		g.onGameOver(finalScore)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.now = g.now.Add(g.frame)

	// Nothing moves while the window is too small to show the well.
	if g.tooSmall {
		g.loop.Resync()
		return core.StepResult{State: g.State()}
	}

	if !in.Empty() {
		g.apply(in)
	}

	g.loop.Frame(g.now)

	return core.StepResult{State: g.State()}
}

// apply turns the actions of one frame into engine commands. Lifecycle
// actions go first so a frame that starts a game can also move the piece.
func (g *Game) apply(in core.InputFrame) {
	switch {
	case in.Has(core.ActionRestart):
		g.engine.Restart()
	case in.Has(core.ActionConfirm):
		g.engine.Start()
	case in.Has(core.ActionPause):
		g.engine.TogglePause()
	}

	if g.engine.State() != StateRunning {
		return
	}
	if in.Has(core.ActionLeft) {
		g.engine.MovePiece(-1, 0)
	}
	if in.Has(core.ActionRight) {
		g.engine.MovePiece(1, 0)
	}
	if in.Has(core.ActionRotate) {
		g.engine.RotatePiece()
	}
	if in.Has(core.ActionDown) {
		g.engine.MovePiece(0, 1)
	}
}

// State returns the scoreboard view of the game.
func (g *Game) State() core.GameState {
	stats := g.engine.Stats()
	state := g.engine.State()
	return core.GameState{
		Score:    stats.Score,
		Level:    stats.Level,
		Lines:    stats.Lines,
		Started:  state != StateNotStarted,
		GameOver: state == StateOver,
		Paused:   state == StatePaused,
	}
}

// Snapshot returns a copy of the engine state.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Engine exposes the underlying rules engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

var (
	_ core.Game             = (*Game)(nil)
	_ core.GameOverNotifier = (*Game)(nil)
	_ core.Resizer          = (*Game)(nil)
)
