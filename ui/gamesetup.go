package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/engine"
	"goban/rules"
	"goban/types"
)

const (
	minSetupSize = 5
	setupHint    = "Tab/↑↓ field   ←→ change   ⏎ start"
)

// SetupWidth and SetupHeight are the dimensions the setup card is drawn at.
const (
	SetupWidth  = 64
	SetupHeight = 22
)

type setupField interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
	Draw(screen tcell.Screen, x, y, width int) int
}

// GameSetupUI is the new game card: board size, colour, rules, komi and the
// menu buttons.
type GameSetupUI struct {
	*MenuCard

	size  *Slider
	color *RadioSelect
	rule  *RadioSelect
	ko    *RadioSelect
	komi  *KomiInput

	fields  []setupField
	buttons []*MenuButton
	focus   int // index into fields, then buttons

	cfg     engine.GameConfig
	onStart func(engine.GameConfig)
}

// NewGameSetup creates the setup card starting from defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onHistory, onColors, onQuit func()) *GameSetupUI {
	s := &GameSetupUI{
		MenuCard: NewMenuCard("goban"),
		cfg:      defaults,
		onStart:  onStart,
	}
	if s.cfg.PlayerColor != types.White {
		s.cfg.PlayerColor = types.Black
	}
	if s.cfg.BoardSize < minSetupSize || s.cfg.BoardSize > rules.MaxSize {
		s.cfg.BoardSize = 19
	}

	s.size = NewSlider("Board Size", minSetupSize, rules.MaxSize, s.cfg.BoardSize,
		func(n int) string { return fmt.Sprintf("%dx%d", n, n) },
		func(n int) { s.cfg.BoardSize = n })
	s.color = NewRadioSelect("Your Color", []string{"Black", "White"}, int(s.cfg.PlayerColor)-1,
		func(i int) { s.cfg.PlayerColor = types.Color(i + 1) })
	s.rule = NewRadioSelect("Scoring", []string{"Chinese", "Japanese"}, int(s.cfg.Rule),
		func(i int) { s.cfg.Rule = rules.Rule(i) })
	s.ko = NewRadioSelect("Ko", []string{"Simple", "Superko"}, int(s.cfg.KoRule),
		func(i int) { s.cfg.KoRule = rules.KoRule(i) })
	s.komi = NewKomiInput("Komi", s.cfg.Komi, func(v float64) { s.cfg.Komi = v })
	s.fields = []setupField{s.size, s.color, s.rule, s.ko, s.komi}

	s.buttons = []*MenuButton{
		NewMenuButton("Start", true, s.start),
		NewMenuButton("History", false, onHistory),
		NewMenuButton("Colors", false, onColors),
		NewMenuButton("Quit", false, onQuit),
	}

	s.SetFooter(setupHint)
	s.setFocus(0)
	return s
}

// Config returns the game configuration as currently selected.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.cfg
}

func (s *GameSetupUI) start() {
	if !s.komi.Valid() {
		s.SetFooter(fmt.Sprintf("Komi must be a number from -%d to %d", maxKomi, maxKomi))
		return
	}
	s.SetFooter(setupHint)
	if s.onStart != nil {
		s.onStart(s.cfg)
	}
}

func (s *GameSetupUI) stops() int {
	return len(s.fields) + len(s.buttons)
}

func (s *GameSetupUI) setFocus(i int) {
	n := s.stops()
	s.focus = ((i % n) + n) % n
	for j, f := range s.fields {
		f.SetFocused(j == s.focus)
	}
	for j, b := range s.buttons {
		b.SetFocused(len(s.fields)+j == s.focus)
	}
}

// HandleKey moves between fields and forwards everything else to the focused
// one. It returns false for keys nobody used.
func (s *GameSetupUI) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyDown:
		s.setFocus(s.focus + 1)
		return true
	case tcell.KeyBacktab, tcell.KeyUp:
		s.setFocus(s.focus - 1)
		return true
	}

	if s.focus >= len(s.fields) {
		b := s.buttons[s.focus-len(s.fields)]
		switch event.Key() {
		case tcell.KeyLeft:
			s.setFocus(s.focus - 1)
			return true
		case tcell.KeyRight:
			s.setFocus(s.focus + 1)
			return true
		}
		return b.HandleKey(event)
	}

	if s.fields[s.focus].HandleKey(event) {
		return true
	}
	if event.Key() == tcell.KeyEnter {
		s.start()
		return true
	}
	return false
}

// InputHandler returns the handler for this primitive.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		s.HandleKey(event)
	})
}

// Draw renders the card, the fields and the button row.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.MenuCard.Draw(screen)

	x, y, width, height := s.ContentRect()
	if width < 20 || height < 2*len(s.fields)+1 {
		return
	}
	row := y
	for _, f := range s.fields {
		row += f.Draw(screen, x, row, width) + 1
	}
	col := x + 2
	for _, b := range s.buttons {
		col += b.Draw(screen, col, row) + 2
	}
}
