package ui

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// maxKomi bounds the compensation accepted from the keyboard.
const maxKomi = 200

// KomiInput is a numeric input field for the komi value. Text that does not
// parse as a number in range is shown in red and leaves the value unchanged.
type KomiInput struct {
	label    string
	value    float64
	text     string
	focused  bool
	cursor   int
	onChange func(float64)
}

// NewKomiInput creates a new komi input field.
func NewKomiInput(label string, initial float64, onChange func(float64)) *KomiInput {
	k := &KomiInput{label: label, onChange: onChange}
	k.setText(initial)
	return k
}

func (k *KomiInput) setText(v float64) {
	k.value = v
	k.text = strconv.FormatFloat(v, 'f', -1, 64)
	k.cursor = len(k.text)
}

// SetFocused sets the focus state.
func (k *KomiInput) SetFocused(focused bool) {
	k.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (k *KomiInput) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		if k.cursor > 0 {
			k.cursor--
		}
		return true
	case tcell.KeyRight:
		if k.cursor < len(k.text) {
			k.cursor++
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if k.cursor > 0 {
			k.text = k.text[:k.cursor-1] + k.text[k.cursor:]
			k.cursor--
			k.updateValue()
		}
		return true
	case tcell.KeyDelete:
		if k.cursor < len(k.text) {
			k.text = k.text[:k.cursor] + k.text[k.cursor+1:]
			k.updateValue()
		}
		return true
	case tcell.KeyRune:
		ch := event.Rune()
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' {
			if len(k.text) >= 6 {
				return true
			}
			k.text = k.text[:k.cursor] + string(ch) + k.text[k.cursor:]
			k.cursor++
			k.updateValue()
			return true
		}
	}
	return false
}

func (k *KomiInput) parse() (float64, bool) {
	v, err := strconv.ParseFloat(k.text, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > maxKomi {
		return 0, false
	}
	return v, true
}

func (k *KomiInput) updateValue() {
	if v, ok := k.parse(); ok {
		k.value = v
		if k.onChange != nil {
			k.onChange(k.value)
		}
	}
}

// Valid reports whether the typed text is the komi in use.
func (k *KomiInput) Valid() bool {
	_, ok := k.parse()
	return ok
}

// Draw renders the komi input component and returns the rows used.
func (k *KomiInput) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	inputStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.InputBG)
	if !k.Valid() {
		inputStyle = inputStyle.Foreground(MenuColors.Invalid)
	}
	cursorStyle := tcell.StyleDefault.Foreground(MenuColors.CardBG).Background(MenuColors.Selected)

	col := drawFieldLabel(screen, x, y, k.label, k.focused)

	// [ 6.5    ]
	screen.SetContent(col, y, '[', nil, labelStyle)
	col++
	screen.SetContent(col, y, ' ', nil, inputStyle)
	col++

	inputStart := col
	for i, ch := range k.text {
		style := inputStyle
		if k.focused && i == k.cursor {
			style = cursorStyle
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	if k.focused && k.cursor >= len(k.text) {
		screen.SetContent(col, y, ' ', nil, cursorStyle)
		col++
	}

	for col < inputStart+7 {
		screen.SetContent(col, y, ' ', nil, inputStyle)
		col++
	}
	screen.SetContent(col, y, ']', nil, labelStyle)

	return 1
}

// Value returns the current komi value.
func (k *KomiInput) Value() float64 {
	return k.value
}

// SetValue sets the komi value.
func (k *KomiInput) SetValue(v float64) {
	k.setText(v)
	if k.onChange != nil {
		k.onChange(k.value)
	}
}
