package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Result is the outcome of one finished game.
type Result struct {
	Score   int
	Level   int
	Lines   int
	EndedAt time.Time
}

const summaryMaxRows = 10 // Rows shown before the table scrolls

// SessionSummary renders the finished games of a session as a table in the
// order they ended, with the best one highlighted. It returns an empty
// string when no game was finished.
func SessionSummary(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	best := 0
	for i, r := range results {
		if r.Score > results[best].Score {
			best = i
		}
	}

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 10},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Ended", Width: 10},
	}

	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Lines),
			r.EndedAt.Format("15:04:05"),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(min(len(rows), summaryMaxRows)+1),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	// Highlight the best game
	t.SetCursor(best)

	title := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Session: %d game(s), best score %d", len(results), results[best].Score))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.View())
}
