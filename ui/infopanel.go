package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"gomoku-local/engine"
	"gomoku-local/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	gameConfig engine.GameConfig
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel(gameCfg engine.GameConfig) *GameInfoPanel {
	panel := &GameInfoPanel{
		box:        tview.NewTextView(),
		gameConfig: gameCfg,
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// Update redraws the panel for the given state and history.
func (p *GameInfoPanel) Update(state *types.BoardState, history []MoveEntry) {
	if state == nil {
		p.box.SetText("")
		return
	}
	p.box.SetText(infoText(state, history, p.gameConfig))
}

const maxVisibleMoves = 12

func infoText(state *types.BoardState, history []MoveEntry, gameCfg engine.GameConfig) string {
	var b strings.Builder

	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]You:[-:-:-]   %s\n", types.Side(gameCfg.PlayerColor))
	fmt.Fprintf(&b, "[white]Depth:[-:-:-] %d\n", gameCfg.SearchDepth)
	fmt.Fprintf(&b, "[white]Move:[-:-:-]  %d\n", state.MoveNumber)

	if len(history) == 0 {
		return b.String()
	}

	b.WriteString("\n[white::b]Moves[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	start := 0
	if len(history) > maxVisibleMoves {
		start = len(history) - maxVisibleMoves
	}
	for i := start; i < len(history); i++ {
		m := history[i]
		color := "[white]B[-]"
		if m.Color == int(types.White) {
			color = "[dimgray]W[-]"
		}
		marker := " "
		if i == len(history)-1 {
			marker = "[white]>[-]"
		}
		coord := types.Position{Row: m.Y, Col: m.X}.String()
		fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, color, coord)
	}
	if start > 0 {
		fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	return b.String()
}
