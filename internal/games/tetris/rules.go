package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Rules holds the tunable numbers of the game: the fall speed curve and
// the score table.
type Rules struct {
	InitialDrop    time.Duration // Fall interval at level 1
	MinDrop        time.Duration // Fastest fall interval
	LevelStep      time.Duration // Interval reduction per level
	LinesPerLevel  int
	LinePoints     [config.LinePointsLen]int // Indexed by rows cleared at once
	SoftDropPoints int                       // Per accepted downward move
}

// DefaultRules returns the classic rules: 1000ms at level 1, 100ms faster
// per level down to 100ms, a level every 10 lines, 100/300/500/800 points
// per clear times the level, and 1 point per soft-drop row.
func DefaultRules() Rules {
	return Rules{
		InitialDrop:    1000 * time.Millisecond,
		MinDrop:        100 * time.Millisecond,
		LevelStep:      100 * time.Millisecond,
		LinesPerLevel:  10,
		LinePoints:     [config.LinePointsLen]int{0, 100, 300, 500, 800},
		SoftDropPoints: 1,
	}
}

// RulesFromConfig converts a validated configuration into Rules.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	r := Rules{
		InitialDrop:    time.Duration(cfg.Timing.InitialDropMs) * time.Millisecond,
		MinDrop:        time.Duration(cfg.Timing.MinDropMs) * time.Millisecond,
		LevelStep:      time.Duration(cfg.Timing.LevelStepMs) * time.Millisecond,
		LinesPerLevel:  cfg.Scoring.LinesPerLevel,
		SoftDropPoints: cfg.Scoring.SoftDropPoints,
	}
	copy(r.LinePoints[:], cfg.Scoring.LinePoints)
	if r.LinesPerLevel <= 0 {
		r.LinesPerLevel = DefaultRules().LinesPerLevel
	}
	return r
}

// Points returns the award for clearing n rows at once on the given level.
// Clears outside the table are worth nothing.
func (r Rules) Points(n, level int) int {
	if n < 0 || n >= len(r.LinePoints) {
		return 0
	}
	return r.LinePoints[n] * level
}

// LevelFor returns the level reached after clearing the given total lines.
func (r Rules) LevelFor(lines int) int {
	return lines/r.LinesPerLevel + 1
}

// DropInterval returns the fall interval for a level.
func (r Rules) DropInterval(level int) time.Duration {
	interval := r.InitialDrop - time.Duration(level-1)*r.LevelStep
	if interval < r.MinDrop {
		return r.MinDrop
	}
	return interval
}
