package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

var defaultThemeColors = map[string]string{
	"I": "cyan",
	"O": "yellow",
	"T": "magenta",
	"S": "green",
	"Z": "red",
	"J": "blue",
	"L": "orange",
}

// DefaultTetrisConfig returns the built-in configuration.
// It matches the embedded defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	colors := make(map[string]string, len(defaultThemeColors))
	for k, v := range defaultThemeColors {
		colors[k] = v
	}

	return TetrisConfig{
		Timing: TimingConfig{
			InitialDropMs: 1000,
			MinDropMs:     100,
			LevelStepMs:   100,
		},
		Scoring: ScoringConfig{
			LinePoints:     []int{0, 100, 300, 500, 800},
			SoftDropPoints: 1,
			LinesPerLevel:  10,
		},
		Theme: ThemeConfig{
			Colors: colors,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
