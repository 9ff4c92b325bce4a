package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"

	"gomoku-local/engine"
)

var (
	setupDepths = []int{2, 4, 6}
	setupRadii  = []int{1, 2}
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	cfg  engine.GameConfig
}

// NewGameSetup creates a new game setup form starting from defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{cfg: defaults}

	colors := []string{"Black (play first)", "White (play second)"}
	depths := lo.Map(setupDepths, func(d int, _ int) string { return fmt.Sprintf("%d plies", d) })
	radii := lo.Map(setupRadii, func(r int, _ int) string { return fmt.Sprintf("%d", r) })

	form := tview.NewForm()

	form.AddDropDown("Your Color", colors, defaults.PlayerColor-1, func(option string, index int) {
		setup.cfg.PlayerColor = index + 1 // 1=black, 2=white
	})

	form.AddDropDown("Search Depth", depths, optionIndex(setupDepths, defaults.SearchDepth), func(option string, index int) {
		if index >= 0 {
			setup.cfg.SearchDepth = setupDepths[index]
		}
	})

	form.AddDropDown("Move Radius", radii, optionIndex(setupRadii, defaults.Radius), func(option string, index int) {
		if index >= 0 {
			setup.cfg.Radius = setupRadii[index]
		}
	})

	form.AddButton("Start Game", func() {
		onStart(setup.cfg)
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetLabelColor(MenuColors.Label)
	form.SetFieldBackgroundColor(MenuColors.FieldBG)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// optionIndex returns the index of v in options, or the first option's index
// when v is not offered.
func optionIndex(options []int, v int) int {
	_, i, ok := lo.FindIndexOf(options, func(o int) bool { return o == v })
	if !ok {
		return 0
	}
	return i
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Config returns the configuration currently selected.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.cfg
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
