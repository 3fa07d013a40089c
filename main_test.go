package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"goban/engine"
	"goban/rules"
	"goban/types"
)

func textConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.BoardSize = 5
	cfg.Seed = 7
	return cfg
}

func playText(t *testing.T, cfg engine.GameConfig, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := runText(cfg, zaptest.NewLogger(t), strings.NewReader(input), &out); err != nil {
		t.Fatalf("runText: %v", err)
	}
	return out.String()
}

func TestTextPassEndsGame(t *testing.T) {
	out := playText(t, textConfig(), "pass\n")
	if !strings.Contains(out, "white plays pass") {
		t.Errorf("opponent did not answer the pass:\n%s", out)
	}
	if !strings.Contains(out, "Game over: White wins by 6.5 points") {
		t.Errorf("missing result on an empty board:\n%s", out)
	}
}

func TestTextResign(t *testing.T) {
	out := playText(t, textConfig(), "resign\n")
	if !strings.Contains(out, "Game over: White wins by resignation") {
		t.Errorf("missing resignation:\n%s", out)
	}
}

func TestTextRejectsBadInput(t *testing.T) {
	out := playText(t, textConfig(), "Z9\nhello\nundo\nquit\n")
	if !strings.Contains(out, rules.ErrOutOfBounds.Error()) {
		t.Errorf("off-board vertex not reported:\n%s", out)
	}
	if !strings.Contains(out, "invalid") {
		t.Errorf("garbage not reported:\n%s", out)
	}
	if !strings.Contains(out, "cannot undo") {
		t.Errorf("undo on an empty game not reported:\n%s", out)
	}
	if strings.Contains(out, "Game over") {
		t.Errorf("quit should leave the game unfinished:\n%s", out)
	}
}

func TestTextPlaysMoves(t *testing.T) {
	out := playText(t, textConfig(), "C3\nquit\n")
	if !strings.Contains(out, "white plays ") {
		t.Errorf("no reply to C3:\n%s", out)
	}
	// the board after the reply marks white's stone as the last move
	if !strings.Contains(out, "(O)") {
		t.Errorf("reply not marked on the board:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	var row3 string
	for _, l := range lines {
		if strings.HasPrefix(l, " 3 ") {
			row3 = l // last board printed wins
		}
	}
	// columns A..E sit at offsets 4, 6, 8, 10, 12
	if len(row3) < 9 || row3[8] != 'X' {
		t.Errorf("black stone at C3 missing from %q", row3)
	}
}

func TestPrintBoard(t *testing.T) {
	X, O, E := types.Black, types.White, types.Empty
	board := types.Freeze(types.Position{
		Size: 3,
		Cells: []types.Color{
			E, E, O,
			E, X, E,
			E, E, E,
		},
		LastMove:       types.Point{X: 2, Y: 0},
		BlackPrisoners: 1,
	})
	var out bytes.Buffer
	printBoard(&out, board)

	want := strings.Join([]string{
		"    A B C",
		" 3  . .(O) 3",
		" 2  . X . 2",
		" 1  . . . 1",
		"    A B C",
		"Captures: black 1, white 0",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("printBoard =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestResumeConfig(t *testing.T) {
	base := textConfig()
	if _, err := resumeConfig(base, t.TempDir()+"/missing.sgf"); err == nil {
		t.Error("resumeConfig of a missing file should fail")
	}
}
