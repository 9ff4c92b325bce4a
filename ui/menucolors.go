package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup and color screens.
var MenuColors = struct {
	Border     tcell.Color
	FieldBG    tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),
	FieldBG:    tcell.PaletteColor(236),
	Label:      tcell.PaletteColor(250),
	Hint:       tcell.PaletteColor(245),
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
