package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the Nord-inspired color palette for the menu UI.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	Invalid     tcell.Color
	InputBG     tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(60),  // muted blue-gray
	BorderFocus: tcell.PaletteColor(109), // brighter blue
	CardBG:      tcell.PaletteColor(236), // dark gray
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(109),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Selected:    tcell.PaletteColor(109),
	Unselected:  tcell.PaletteColor(245),
	Invalid:     tcell.PaletteColor(167), // muted red
	InputBG:     tcell.PaletteColor(238),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
}

// labelWidth is the column width reserved for field labels on the setup card.
const labelWidth = 12

// drawFieldLabel draws the focus cursor and a "◈ Label" prefix for a setup field
// and returns the column where the field's control starts.
func drawFieldLabel(screen tcell.Screen, x, y int, label string, focused bool) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)

	if focused {
		screen.SetContent(x, y, '▸', nil, selectedStyle)
	} else {
		screen.SetContent(x, y, ' ', nil, bgStyle)
	}
	screen.SetContent(x+2, y, '◈', nil, accentStyle)

	col := x + 4
	for _, ch := range label {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	return x + 4 + labelWidth + 1
}

// drawText writes a string to the screen at the given position and returns the
// column after it.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
