// Package ui provides tview controls for playing Gomoku in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"gomoku-local/config"
	"gomoku-local/engine"
	"gomoku-local/types"
)

// MoveEntry is one played stone, X=column, Y=row.
type MoveEntry struct {
	X     int
	Y     int
	Color int
}

type BoardUI struct {
	Box         *tview.Box
	BoardState  *types.BoardState
	status      *tview.TextView
	cfg         *config.Config
	gameConfig  engine.GameConfig
	finished    bool
	selX        int
	selY        int
	hintX       int
	hintY       int
	message     string
	app         *tview.Application
	eng         engine.GameEngine
	styles      []tcell.Color
	infoPanel   *GameInfoPanel
	focusMode   bool
	moveHistory []MoveEntry
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshStatus()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshStatus()
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *BoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.selX = g.BoardState.LastMove.X
		g.selY = g.BoardState.LastMove.Y
		if g.SelectedTile() == nil {
			g.selX = g.BoardState.Width() / 2
			g.selY = g.BoardState.Height() / 2
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewBoard(app *tview.Application, c *config.Config, status *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(types.BoardSize),
		status:     status,
		app:        app,
		selX:       -1,
		selY:       -1,
		hintX:      -1,
		hintY:      -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	bs := g.BoardState
	if bs == nil || bs.Width() == 0 {
		return x, y, 1, 1
	}
	theme := g.cfg.Theme
	w, h := bs.Width(), bs.Height()

	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			stone := bs.Board[by][bx]
			bg := stone
			if !theme.DrawStoneBackground {
				bg = 0
			}
			if (bx%2 + by%2) == 1 {
				bg += 3
			}

			var fg tcell.Color
			var r rune
			switch {
			case stone == int(types.Black):
				r, fg = theme.Symbols.BlackStone, g.styles[1]
			case stone == int(types.White):
				r, fg = theme.Symbols.WhiteStone, g.styles[2]
			case theme.UseGridLines:
				r, fg = gridRune(bx, by, w, h, isStarPoint(bx, by)), g.styles[9]
			default:
				r, fg = theme.Symbols.BoardSquare, g.styles[9]
			}

			switch {
			case bx == g.selX && by == g.selY:
				if theme.DrawCursorBackground {
					bg = 8
				} else if !theme.UseGridLines {
					r = theme.Symbols.Cursor
				}
			case bx == g.hintX && by == g.hintY && stone == 0:
				r, fg = '✕', g.styles[6]
			case bx == bs.LastMove.X && by == bs.LastMove.Y:
				if theme.DrawLastPlayedBackground {
					bg = 7
				} else if !theme.UseGridLines {
					r = theme.Symbols.LastPlayed
				}
			}

			style := tcell.StyleDefault.Background(g.styles[bg]).Foreground(fg)
			if theme.UseGridLines && stone == 0 {
				stoneRight := bx < w-1 && bs.Board[by][bx+1] > 0
				drawGridCell(screen, style, r, bx, by, x+4, y, w, stoneRight)
			} else {
				drawStoneCell(screen, style, r, bx, by, x+4, y)
			}
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, w*2 + 4, h + 2
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine, gameCfg engine.GameConfig) error {
	g.finished = false
	g.eng = e
	g.gameConfig = gameCfg
	g.moveHistory = nil
	g.message = ""
	g.clearHint()

	e.OnMove(func(x, y, color int, boardState *types.BoardState) {
		g.app.QueueUpdateDraw(func() {
			g.applyMove(e, MoveEntry{X: x, Y: y, Color: color}, boardState)
		})
	})

	e.OnGameEnd(func(outcome string) {
		g.app.QueueUpdateDraw(func() {
			g.applyGameEnd(e)
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.BoardState = e.GetBoardState()
	g.refreshStatus()
	return nil
}

// applyMove records a move reported by from. Updates queued by an engine that
// has since been replaced are dropped.
func (g *BoardUI) applyMove(from engine.GameEngine, entry MoveEntry, boardState *types.BoardState) bool {
	if g.eng != from {
		return false
	}
	g.moveHistory = append(g.moveHistory, entry)
	g.BoardState = boardState
	g.clearHint()
	g.refreshStatus()
	return true
}

func (g *BoardUI) applyGameEnd(from engine.GameEngine) bool {
	if g.eng != from {
		return false
	}
	g.finished = true
	g.BoardState = from.GetBoardState()
	g.ResetSelection()
	g.refreshStatus()
	return true
}

// PlayMove plays the selected cell for the human.
func (g *BoardUI) PlayMove(x, y int) {
	if g.finished || g.eng == nil || !g.eng.IsMyTurn() {
		return
	}
	if err := g.eng.PlayMove(x, y); err != nil {
		g.message = err.Error()
	} else {
		g.message = ""
	}
	g.refreshStatus()
}

// Undo takes back the last human and engine moves.
func (g *BoardUI) Undo() {
	if g.eng == nil {
		return
	}
	for i := 0; i < 2; i++ {
		if err := g.eng.Undo(); err != nil {
			if i == 0 {
				g.message = err.Error()
			}
			break
		}
	}
	g.BoardState = g.eng.GetBoardState()
	if n := g.BoardState.MoveNumber; n < len(g.moveHistory) {
		g.moveHistory = g.moveHistory[:n]
	}
	g.finished = g.BoardState.Finished()
	g.clearHint()
	g.refreshStatus()
}

// ShowHint asks the engine for a suggestion and marks it on the board.
// The search runs off the UI goroutine.
func (g *BoardUI) ShowHint() {
	if g.finished || g.eng == nil || !g.eng.IsMyTurn() {
		return
	}
	g.message = "thinking about a hint..."
	g.refreshStatus()
	eng := g.eng
	go func() {
		x, y, err := eng.Hint()
		g.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Msg("hint")
				g.message = err.Error()
			} else {
				g.hintX, g.hintY = x, y
				g.message = "hint: " + types.Position{Row: y, Col: x}.String()
			}
			g.refreshStatus()
		})
	}()
}

func (g *BoardUI) clearHint() {
	g.hintX, g.hintY = -1, -1
}

// Close shuts the engine down.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 3
		tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),     // 4
		tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),     // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // 6
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 8
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 9
	}
	g.cfg = c
}

func (g *BoardUI) refreshStatus() {
	if g.infoPanel != nil {
		g.infoPanel.Update(g.BoardState, g.moveHistory)
	}

	if g.focusMode {
		g.status.SetText("  f to toggle")
		return
	}

	var turnLine, controlsLine string
	if g.finished {
		turnLine = fmt.Sprintf("  Result: %s", g.BoardState.Outcome)
		controlsLine = "   u undo   q menu"
	} else {
		if g.eng != nil && g.eng.IsMyTurn() {
			stone := "●"
			if g.eng.GetPlayerColor() == int(types.White) {
				stone = "○"
			}
			turnLine = fmt.Sprintf("  %s Your move (%s)", stone, types.Side(g.eng.GetPlayerColor()))
		} else {
			turnLine = "  ◌ Thinking..."
		}
		controlsLine = "\n  hjkl/↑↓←→ move   ⏎ play   ? hint   u undo   f focus   q quit"
	}
	if g.message != "" {
		turnLine += "   " + g.message
	}
	g.status.SetText(turnLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// drawCoordinates labels columns A-S below the board and rows 19-1 on the left.
func (g *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	letter := 'A'
	w, h := g.BoardState.Width(), g.BoardState.Height()
	if g.cfg.Theme.FullWidthLetters {
		letter = 'Ａ'
	}

	highlight := tcell.StyleDefault.Background(g.styles[8])
	lastPlayed := tcell.StyleDefault.Background(g.styles[7])

	for ix := 0; ix < w; ix++ {
		style := tcell.StyleDefault
		if ix == g.selX {
			style = highlight
		} else if ix == g.BoardState.LastMove.X {
			style = lastPlayed
		}
		s.SetContent(x+4+ix*2, y+h+1, letter+rune(ix), nil, style)
		s.SetContent(x+4+ix*2+1, y+h+1, ' ', nil, style)
	}

	for iy := 0; iy < h; iy++ {
		style := tcell.StyleDefault
		if iy == g.selY {
			style = highlight
		} else if iy == g.BoardState.LastMove.Y {
			style = lastPlayed
		}
		label := fmt.Sprintf("%2d", h-iy)
		s.SetContent(x+1, y+iy, rune(label[0]), nil, style)
		s.SetContent(x+2, y+iy, rune(label[1]), nil, style)
	}
}
