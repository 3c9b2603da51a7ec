package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellW = 2 // Terminal columns per board cell

	wellW   = Width*cellW + 2 // Board plus side borders
	wellH   = Height + 2      // Board plus top and bottom borders
	panelW  = 14
	panelGp = 2

	previewW = 4*cellW + 2
	previewH = 4

	minScreenW = wellW + panelGp + panelW
	minScreenH = wellH
)

const (
	blockRune = '█'
	emptyRune = '·'
)

// Render draws the well, the falling piece, the preview, the scoreboard
// and any state overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.engine.Snapshot()

	originX := core.Max(0, (g.screenW-minScreenW)/2)
	originY := core.Max(0, (g.screenH-minScreenH)/2)
	well := core.NewRect(originX, originY, wellW, wellH)

	g.renderWell(dst, well, snap)
	g.renderPanel(dst, well.Right()+panelGp, originY, snap)
	g.renderOverlays(dst, well, snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

func (g *Game) renderWell(dst *core.Screen, well core.Rect, snap Snapshot) {
	dst.DrawBoxColored(well, core.ColorGray)

	inner := well.Inset(1)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			sx := inner.X + x*cellW
			sy := inner.Y + y

			p := snap.Cell(x, y)
			if p == PieceNone {
				dst.SetColored(sx+1, sy, emptyRune, core.ColorGray)
				continue
			}
			g.drawBlock(dst, sx, sy, p)
		}
	}
}

func (g *Game) drawBlock(dst *core.Screen, sx, sy int, p PieceType) {
	color := g.colors[p]
	for i := 0; i < cellW; i++ {
		dst.SetColored(sx+i, sy, blockRune, color)
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int, snap Snapshot) {
	dst.DrawText(x, y, "T E T R I S")

	// Preview box
	box := core.NewRect(x, y+2, previewW, previewH+2)
	dst.DrawBoxColored(box, core.ColorGray)
	dst.DrawText(box.X+2, box.Y, " NEXT ")
	if next := snap.Next; next != nil {
		// Center the piece inside the box
		offX := box.X + 1 + (previewW-2-next.Shape.Width()*cellW)/2
		offY := box.Y + 1 + (previewH-next.Shape.Height())/2
		for _, c := range next.Shape.Cells() {
			g.drawBlock(dst, offX+c.X*cellW, offY+c.Y, next.Type)
		}
	}

	statsY := box.Bottom() + 1
	dst.DrawText(x, statsY, "SCORE")
	dst.DrawTextColored(x, statsY+1, fmt.Sprintf("%d", snap.Stats.Score), core.ColorYellow)
	dst.DrawText(x, statsY+3, "LEVEL")
	dst.DrawTextColored(x, statsY+4, fmt.Sprintf("%d", snap.Stats.Level), core.ColorCyan)
	dst.DrawText(x, statsY+6, "LINES")
	dst.DrawTextColored(x, statsY+7, fmt.Sprintf("%d", snap.Stats.Lines), core.ColorGreen)
	dst.DrawTextColored(x, statsY+9, fmt.Sprintf("%dms/row", snap.DropInterval.Milliseconds()), core.ColorGray)
}

// renderOverlays draws the not-started, paused and game-over boxes.
func (g *Game) renderOverlays(dst *core.Screen, well core.Rect, snap Snapshot) {
	cx, cy := well.Center()

	switch snap.State {
	case StateNotStarted:
		g.drawOverlay(dst, cx, cy, "TETRIS", "Enter to start")
	case StatePaused:
		g.drawOverlay(dst, cx, cy, "PAUSED", "P to resume")
	case StateOver:
		g.drawOverlay(dst, cx, cy, "GAME OVER", fmt.Sprintf("Score: %d", g.finalScore), "R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
