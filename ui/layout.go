package ui

import "github.com/rivo/tview"

const infoPanelWidth = 26

// RebuildNormalLayout fills gameFrame with the board, the info panel and the status bar.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, status *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel(board.gameConfig)
	board.infoPanel = infoPanel
	if board.BoardState != nil {
		infoPanel.Update(board.BoardState, board.moveHistory)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), infoPanelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(status, 4, 0, false)
}

// BuildFocusLayout centers the board alone in gameFrame.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth, boardHeight := 42, 21
	if board.BoardState != nil && board.BoardState.Width() > 0 {
		boardWidth = board.BoardState.Width()*2 + 4
		boardHeight = board.BoardState.Height() + 2
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

// CreateCenteredForm centers form horizontally with the given width.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}
