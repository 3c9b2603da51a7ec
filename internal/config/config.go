// Package config provides YAML-based configuration for the game rules and
// the piece color theme.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// LinePointsLen is the number of entries in the line-clear score table:
// one for each possible simultaneous clear, zero through four rows.
const LinePointsLen = 5

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// TimingConfig defines the fall speed curve, in milliseconds.
type TimingConfig struct {
	InitialDropMs int `yaml:"initial_drop_ms"`
	MinDropMs     int `yaml:"min_drop_ms"`
	LevelStepMs   int `yaml:"level_step_ms"`
}

// ScoringConfig defines points and level progression.
type ScoringConfig struct {
	LinePoints     []int `yaml:"line_points"`
	SoftDropPoints int   `yaml:"soft_drop_points"`
	LinesPerLevel  int   `yaml:"lines_per_level"`
}

// ThemeConfig maps upper-case piece letters (I, O, T, S, Z, J, L) to color names.
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors"`
}

// pieceLetters are the keys accepted in theme.colors.
var pieceLetters = []string{"I", "O", "T", "S", "Z", "J", "L"}

// Validate checks the configuration for values the game cannot run with.
// All problems are reported together.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Timing.InitialDropMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.initial_drop_ms must be positive, got %d", c.Timing.InitialDropMs))
	}
	if c.Timing.MinDropMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.min_drop_ms must be positive, got %d", c.Timing.MinDropMs))
	}
	if c.Timing.MinDropMs > c.Timing.InitialDropMs {
		errs = append(errs, fmt.Errorf("timing.min_drop_ms (%d) exceeds initial_drop_ms (%d)",
			c.Timing.MinDropMs, c.Timing.InitialDropMs))
	}
	if c.Timing.LevelStepMs < 0 {
		errs = append(errs, fmt.Errorf("timing.level_step_ms must not be negative, got %d", c.Timing.LevelStepMs))
	}

	if len(c.Scoring.LinePoints) != LinePointsLen {
		errs = append(errs, fmt.Errorf("scoring.line_points needs %d entries, got %d",
			LinePointsLen, len(c.Scoring.LinePoints)))
	}
	for i, p := range c.Scoring.LinePoints {
		if p < 0 {
			errs = append(errs, fmt.Errorf("scoring.line_points[%d] must not be negative, got %d", i, p))
		}
	}
	if c.Scoring.SoftDropPoints < 0 {
		errs = append(errs, fmt.Errorf("scoring.soft_drop_points must not be negative, got %d", c.Scoring.SoftDropPoints))
	}
	if c.Scoring.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("scoring.lines_per_level must be positive, got %d", c.Scoring.LinesPerLevel))
	}

	for key, name := range c.Theme.Colors {
		if !isPieceLetter(key) {
			errs = append(errs, fmt.Errorf("theme.colors: unknown piece %q", key))
			continue
		}
		if _, err := core.ParseColor(name); err != nil {
			errs = append(errs, fmt.Errorf("theme.colors.%s: %w", key, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// PieceColor returns the theme color for a piece letter.
// Missing or unparsable entries fall back to the built-in theme.
func (c TetrisConfig) PieceColor(letter string) core.Color {
	letter = strings.ToUpper(letter)
	if name, ok := c.Theme.Colors[letter]; ok {
		if color, err := core.ParseColor(name); err == nil {
			return color
		}
	}
	if name, ok := defaultThemeColors[letter]; ok {
		color, _ := core.ParseColor(name)
		return color
	}
	return core.ColorDefault
}

func isPieceLetter(s string) bool {
	for _, l := range pieceLetters {
		if l == s {
			return true
		}
	}
	return false
}
