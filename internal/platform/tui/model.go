package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// session collects what outlives a single Model value: Bubble Tea copies
// the model on every update, so finished games are recorded here.
type session struct {
	logger  *log.Logger
	results []Result
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       core.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	session    *session
	termW      int
	termH      int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards all output.
func NewModel(game core.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		session:    &session{logger: logger},
		termW:      cfg.ScreenW,
		termH:      cfg.ScreenH,
	}
	m.config.ScreenW, m.config.ScreenH = m.gameArea()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)

	if n, ok := game.(core.GameOverNotifier); ok {
		s := m.session
		n.SetGameOverHandler(func(finalScore int) {
			s.gameOver(game.ID(), finalScore, game.State())
		})
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

func (s *session) gameOver(gameID string, finalScore int, st core.GameState) {
	s.results = append(s.results, Result{
		Score:   finalScore,
		Level:   st.Level,
		Lines:   st.Lines,
		EndedAt: time.Now(),
	})
	s.logger.Info("game over",
		"game", gameID,
		"score", finalScore,
		"level", st.Level,
		"lines", st.Lines,
	)
}

// gameArea returns the screen size left for the game below the help line.
func (m Model) gameArea() (int, int) {
	return m.termW, core.Max(0, m.termH-m.helpHeight())
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		rows := 0
		for _, col := range m.keys.FullHelp() {
			rows = core.Max(rows, len(col))
		}
		return rows
	}
	return 1
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.session.logger.Debug("session started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(m.termW, m.termH)
	}

	if quit := m.keys.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		m.session.logger.Debug("session ended", "game", m.game.ID())
		return m, tea.Quit
	}
	return m, nil
}

// handleResize follows the terminal size. Games that implement
// core.Resizer keep their state; others are reset.
func (m Model) handleResize(width, height int) (tea.Model, tea.Cmd) {
	m.termW = width
	m.termH = height
	m.help.Width = width
	m.config.ScreenW, m.config.ScreenH = m.gameArea()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(core.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.Started {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	restart := m.inputFrame.Has(core.ActionRestart)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logTransitions(prev, m.gameState, restart)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// logTransitions logs lifecycle changes between two ticks. restart reports
// whether the consumed frame carried ActionRestart.
func (m Model) logTransitions(prev, cur core.GameState, restart bool) {
	logger := m.session.logger
	switch {
	case cur.Started && !cur.GameOver && (prev.GameOver || !prev.Started):
		logger.Info("game started", "game", m.game.ID())
	case restart && prev.Started && cur.Started && !cur.GameOver:
		logger.Info("game restarted", "game", m.game.ID(), "abandoned_score", prev.Score)
	}
	if cur.Paused != prev.Paused {
		logger.Debug("pause toggled", "paused", cur.Paused)
	}
	if cur.Level > prev.Level && prev.Started && cur.Lines > prev.Lines {
		logger.Info("level up", "level", cur.Level, "lines", cur.Lines)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Results returns the games finished during this session, oldest first.
func (m Model) Results() []Result {
	out := make([]Result, len(m.session.results))
	copy(out, m.session.results)
	return out
}

// Run starts the Bubble Tea program for the given game and returns the
// results of every game finished before the player quit.
func Run(game core.Game, cfg core.RuntimeConfig, logger *log.Logger) ([]Result, error) {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return model.Results(), nil
}
