package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Slider selects an integer between min and max with left/right.
type Slider struct {
	label    string
	min      int
	max      int
	value    int
	focused  bool
	format   func(int) string
	onChange func(int)
}

// NewSlider creates a new slider. format renders the value next to the bar; nil
// prints the plain number.
func NewSlider(label string, min, max, initial int, format func(int) string, onChange func(int)) *Slider {
	if format == nil {
		format = strconv.Itoa
	}
	s := &Slider{
		label:    label,
		min:      min,
		max:      max,
		value:    min,
		format:   format,
		onChange: onChange,
	}
	if initial >= min && initial <= max {
		s.value = initial
	}
	return s
}

// SetFocused sets the focus state.
func (s *Slider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *Slider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		s.SetValue(s.value - 1)
		return true
	case tcell.KeyRight:
		s.SetValue(s.value + 1)
		return true
	case tcell.KeyHome:
		s.SetValue(s.min)
		return true
	case tcell.KeyEnd:
		s.SetValue(s.max)
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			s.SetValue(s.value - 1)
			return true
		case 'l':
			s.SetValue(s.value + 1)
			return true
		}
	}
	return false
}

// Draw renders the slider component and returns the rows used.
func (s *Slider) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)

	col := drawFieldLabel(screen, x, y, s.label, s.focused)

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	filled := s.value - s.min + 1
	for i := 0; i < s.max-s.min+1; i++ {
		char := '░'
		style := unselectedStyle
		if i < filled {
			char = '█'
			style = selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++

	screen.SetContent(col, y, '▶', nil, arrowStyle)
	col += 2
	drawText(screen, col, y, s.format(s.value), labelStyle)

	return 1
}

// Value returns the current slider value.
func (s *Slider) Value() int {
	return s.value
}

// SetValue sets the slider value. Values outside the range are ignored.
func (s *Slider) SetValue(v int) {
	if v < s.min || v > s.max || v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}
