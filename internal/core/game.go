package core

// Game is the contract between a game and the platform.
// Games contain pure logic; the platform handles input mapping, timing
// and terminal output.
type Game interface {
	// ID returns a unique identifier for this game, used in logs.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen and RNG seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}

// GameOverNotifier is implemented by games that report the final score
// the moment a game ends.
type GameOverNotifier interface {
	SetGameOverHandler(fn func(finalScore int))
}

// Resizer is implemented by games that can follow a terminal resize
// without being reset.
type Resizer interface {
	Resize(width, height int)
}
