package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioSelect is a row of mutually exclusive choices, changed with left/right.
type RadioSelect struct {
	label    string
	options  []string
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []string, initial int, onChange func(int)) *RadioSelect {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		r.SetSelected(r.selected - 1)
		return true
	case tcell.KeyRight:
		r.SetSelected(r.selected + 1)
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			r.SetSelected(r.selected - 1)
			return true
		case 'l':
			r.SetSelected(r.selected + 1)
			return true
		}
	}
	return false
}

// Draw renders the label and options on one row and returns the rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)

	col := drawFieldLabel(screen, x, y, r.label, r.focused)
	for i, opt := range r.options {
		style := unselectedStyle
		bullet := "○ "
		if i == r.selected {
			bullet = "● "
			style = selectedStyle
		}
		col = drawText(screen, col, y, bullet+opt, style)
		col += 2
		if col >= x+width {
			break
		}
	}
	return 1
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) || index == r.selected {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(r.selected)
	}
}
