package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"goban/engine"
	"goban/rules"
	"goban/types"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(s *GameSetupUI, events ...*tcell.EventKey) {
	for _, ev := range events {
		s.HandleKey(ev)
	}
}

func TestSetupStartsWithDefaults(t *testing.T) {
	var started *engine.GameConfig
	s := NewGameSetup(engine.DefaultConfig(), func(c engine.GameConfig) { started = &c }, nil, nil, nil)

	press(s, key(tcell.KeyEnter))
	if started == nil {
		t.Fatal("Enter on a field should start the game")
	}
	if *started != engine.DefaultConfig() {
		t.Errorf("started with %+v, want defaults", *started)
	}
}

func TestSetupChangesEveryField(t *testing.T) {
	var started *engine.GameConfig
	s := NewGameSetup(engine.DefaultConfig(), func(c engine.GameConfig) { started = &c }, nil, nil, nil)

	// board size: 19 -> 9
	for i := 0; i < 10; i++ {
		press(s, key(tcell.KeyLeft))
	}
	press(s, key(tcell.KeyTab), key(tcell.KeyRight)) // white
	press(s, key(tcell.KeyTab), runeKey('l'))        // japanese
	press(s, key(tcell.KeyTab), key(tcell.KeyRight)) // superko
	press(s, key(tcell.KeyTab),
		key(tcell.KeyBackspace), key(tcell.KeyBackspace), key(tcell.KeyBackspace),
		runeKey('7'), runeKey('.'), runeKey('5'))
	press(s, key(tcell.KeyTab)) // start button
	press(s, key(tcell.KeyEnter))

	if started == nil {
		t.Fatal("Start button did not start the game")
	}
	want := engine.GameConfig{
		BoardSize:   9,
		Komi:        7.5,
		Rule:        rules.Japanese,
		KoRule:      rules.PositionalSuperko,
		PlayerColor: types.White,
	}
	if *started != want {
		t.Errorf("started with %+v, want %+v", *started, want)
	}
}

func TestSetupRejectsBadKomi(t *testing.T) {
	started := false
	s := NewGameSetup(engine.DefaultConfig(), func(engine.GameConfig) { started = true }, nil, nil, nil)

	// wrap around to the last button, then walk left to komi
	press(s, key(tcell.KeyBacktab))
	press(s, key(tcell.KeyLeft), key(tcell.KeyLeft), key(tcell.KeyLeft), key(tcell.KeyLeft))
	press(s, key(tcell.KeyBackspace), key(tcell.KeyBackspace), key(tcell.KeyBackspace), runeKey('-'))
	if s.komi.Valid() {
		t.Fatal("\"-\" should not be a valid komi")
	}
	press(s, key(tcell.KeyEnter))
	if started {
		t.Error("game started with an invalid komi")
	}
	if got := s.Config().Komi; got != 6.5 {
		t.Errorf("Komi = %v, want the last valid value 6.5", got)
	}
}

func TestSetupButtons(t *testing.T) {
	var pressed []string
	s := NewGameSetup(engine.DefaultConfig(), nil,
		func() { pressed = append(pressed, "history") },
		func() { pressed = append(pressed, "colors") },
		func() { pressed = append(pressed, "quit") })

	// quit, colors, history
	press(s, key(tcell.KeyBacktab), key(tcell.KeyEnter))
	press(s, key(tcell.KeyLeft), key(tcell.KeyEnter))
	press(s, key(tcell.KeyLeft), runeKey(' '))
	if len(pressed) != 3 || pressed[0] != "quit" || pressed[1] != "colors" || pressed[2] != "history" {
		t.Errorf("pressed %v", pressed)
	}
}

func TestSetupClampsDefaults(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.BoardSize = 3
	cfg.PlayerColor = types.Empty
	s := NewGameSetup(cfg, nil, nil, nil, nil)
	got := s.Config()
	if got.BoardSize != 19 || got.PlayerColor != types.Black {
		t.Errorf("Config() = %+v, want size 19 and black", got)
	}
}

func TestSetupDraws(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(SetupWidth, SetupHeight)

	s := NewGameSetup(engine.DefaultConfig(), nil, nil, nil, nil)
	s.SetRect(0, 0, SetupWidth, SetupHeight)
	s.Draw(screen)
	screen.Show()

	cells, width, _ := screen.GetContents()
	var text []rune
	for _, c := range cells {
		if len(c.Runes) > 0 {
			text = append(text, c.Runes[0])
		}
	}
	if width != SetupWidth {
		t.Fatalf("screen width %d", width)
	}
	for _, want := range []string{"Board Size", "19x19", "Japanese", "Superko", "Komi", "Start", "History"} {
		if !containsRunes(text, want) {
			t.Errorf("setup card does not show %q", want)
		}
	}
}

func containsRunes(text []rune, want string) bool {
	w := []rune(want)
	for i := 0; i+len(w) <= len(text); i++ {
		match := true
		for j := range w {
			if text[i+j] != w[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
