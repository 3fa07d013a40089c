package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/config"
	"goban/rules"
	"goban/types"
)

type paletteEntry struct {
	code int
	name string
}

// Common board colors to choose from (warm wood-like tones)
var boardColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{228, "Light Gold"},
	{222, "Gold"},
	{220, "Bright Yellow"},
	{214, "Orange Gold"},
	{208, "Dark Orange"},
	{180, "Tan"},
	{179, "Light Brown"},
	{172, "Brown"},
	{136, "Dark Brown"},
	{94, "Saddle Brown"},
	{252, "Light Gray"},
	{250, "Gray"},
	{248, "Medium Gray"},
	{244, "Dark Gray"},
	{188, "Light Beige"},
	{181, "Dusty Rose"},
	{223, "Peach"},
	{216, "Salmon"},
}

// Line colors (darker tones that contrast with board)
var lineColors = []paletteEntry{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{88, "Dark Red"},
	{52, "Dark Maroon"},
	{22, "Dark Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{232, "Black"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{244, "Medium Gray"},
	{16, "True Black"},
}

// Territory shades, from dark to light
var areaColors = []paletteEntry{
	{234, "Charcoal"},
	{237, "Graphite"},
	{240, "Gray"},
	{243, "Slate"},
	{246, "Silver"},
	{249, "Ash"},
	{250, "Light Gray"},
	{253, "Mist"},
	{66, "Dusk Blue"},
	{108, "Sage"},
	{138, "Clay"},
	{187, "Sand"},
}

// colorTarget is the theme color being edited.
type colorTarget int

const (
	targetBoard colorTarget = iota
	targetLine
	targetBlackArea
	targetWhiteArea
	targetCount
)

func (t colorTarget) String() string {
	switch t {
	case targetLine:
		return "Line"
	case targetBlackArea:
		return "Black Area"
	case targetWhiteArea:
		return "White Area"
	}
	return "Board"
}

func (t colorTarget) palette() []paletteEntry {
	switch t {
	case targetLine:
		return lineColors
	case targetBlackArea, targetWhiteArea:
		return areaColors
	}
	return boardColors
}

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	target colorTarget
	picked [targetCount]int // color codes shown in the preview

	sample     *types.BoardState
	sampleArea [][]types.Color
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:    cfg,
		onDone: onDone,
	}
	cc.resetPicks()
	cc.sample, cc.sampleArea = samplePosition()

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		palette := cc.target.palette()
		if index >= 0 && index < len(palette) {
			cc.picked[cc.target] = palette[index].code
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.apply()
		if cc.target == targetCount-1 {
			cc.target = targetBoard
			cc.populateColorList()
			if onDone != nil {
				onDone()
			}
			return
		}
		cc.ToggleMode()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) resetPicks() {
	colors := cc.cfg.Theme.Colors
	cc.picked = [targetCount]int{
		targetBoard:     colors.BoardColor,
		targetLine:      colors.LineColor,
		targetBlackArea: colors.BlackAreaColor,
		targetWhiteArea: colors.WhiteAreaColor,
	}
}

// apply stores the picked color for the current target and saves the config.
func (cc *ColorConfigUI) apply() {
	colors := &cc.cfg.Theme.Colors
	code := cc.picked[cc.target]
	switch cc.target {
	case targetBoard:
		colors.BoardColor = code
		colors.BoardColorAlt = code
	case targetLine:
		colors.LineColor = code
	case targetBlackArea:
		colors.BlackAreaColor = code
	case targetWhiteArea:
		colors.WhiteAreaColor = code
	}
	if err := cc.cfg.Save(); err != nil {
		cc.colorList.SetTitle(" Save failed ")
	}
}

// populateColorList fills the list with the palette of the current target.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()
	next := (cc.target + 1) % targetCount
	cc.colorList.SetTitle(fmt.Sprintf(" %s Color (Tab: %s) ", cc.target, next))

	keep := cc.picked[cc.target]
	current := -1
	for i, c := range cc.target.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
		if c.code == keep {
			current = i
		}
	}
	if current >= 0 {
		cc.colorList.SetCurrentItem(current)
	}
	// The list reports the first item as changed while filling it.
	cc.picked[cc.target] = keep
}

// samplePosition plays out a small finished game for the preview: black walls
// off the left side, white the right, with a capture in white's area.
func samplePosition() (*types.BoardState, [][]types.Color) {
	g, err := rules.New(7, rules.Chinese)
	if err != nil {
		return nil, nil
	}
	moves := []types.Point{
		{X: 2, Y: 0}, {X: 4, Y: 0},
		{X: 2, Y: 1}, {X: 4, Y: 1},
		{X: 2, Y: 2}, {X: 4, Y: 2},
		{X: 2, Y: 3}, {X: 4, Y: 3},
		{X: 2, Y: 4}, {X: 4, Y: 4},
		{X: 2, Y: 5}, {X: 4, Y: 5},
		{X: 2, Y: 6}, {X: 4, Y: 6},
		{X: 6, Y: 6}, {X: 5, Y: 6},
		{X: 0, Y: 0}, {X: 6, Y: 5},
	}
	for _, p := range moves {
		if err := g.Play(rules.Play{Point: p}); err != nil {
			return nil, nil
		}
	}
	_ = g.Pass()
	_ = g.Pass()
	board := g.BoardSnapshot()
	return board, rules.Territory(board)
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if cc.sample == nil {
		return x, y, width, height
	}
	size := cc.sample.Size()
	if width < size*2+4 || height < size+4 {
		return x, y, width, height
	}

	boardColor := tcell.PaletteColor(cc.picked[targetBoard])
	lineColor := tcell.PaletteColor(cc.picked[targetLine])
	stoneColors := map[types.Color]tcell.Color{
		types.Black: tcell.PaletteColor(cc.cfg.Theme.Colors.BlackColor),
		types.White: tcell.PaletteColor(cc.cfg.Theme.Colors.WhiteColor),
	}
	areas := map[types.Color]tcell.Color{
		types.Black: tcell.PaletteColor(cc.picked[targetBlackArea]),
		types.White: tcell.PaletteColor(cc.picked[targetWhiteArea]),
	}

	startX := x + 2
	startY := y + 1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			style := tcell.StyleDefault.Background(boardColor).Foreground(lineColor)
			char := getGridRune(col, row, size, size, false)
			stone := cc.sample.At(col, row)
			if stone != types.Empty {
				char = '●'
				style = style.Foreground(stoneColors[stone])
			} else if owner := cc.sampleArea[row][col]; owner != types.Empty {
				style = style.Background(areas[owner])
			}
			screen.SetContent(startX+col*2, startY+row, char, nil, style)

			connector := '─'
			if col == size-1 || stone != types.Empty || cc.sample.At(col+1, row) != types.Empty {
				connector = ' '
			}
			screen.SetContent(startX+col*2+1, startY+row, connector, nil, style)
		}
	}

	info := fmt.Sprintf("Board %d  Line %d  Areas %d/%d",
		cc.picked[targetBoard], cc.picked[targetLine], cc.picked[targetBlackArea], cc.picked[targetWhiteArea])
	if len(info) < width-2 {
		drawText(screen, startX, startY+size+1, info, tcell.StyleDefault)
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode moves on to the next color to edit.
func (cc *ColorConfigUI) ToggleMode() {
	cc.target = (cc.target + 1) % targetCount
	cc.populateColorList()
}

// Cancel drops unsaved picks and goes back to the first color.
func (cc *ColorConfigUI) Cancel() {
	cc.resetPicks()
	cc.target = targetBoard
	cc.populateColorList()
}
