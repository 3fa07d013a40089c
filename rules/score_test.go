package rules

import (
	"slices"
	"testing"

	"goban/types"
)

// two walls: black owns the left column, white the right, the middle is dame
var wallsDiagram = []string{
	".X.O.",
	".X.O.",
	".X.O.",
	".X.O.",
	".X.O.",
}

func TestCountBreakdown(t *testing.T) {
	b := boardFrom(t, wallsDiagram...)
	s := count(b, Chinese, 6.5, 7, 0)

	if s.Black.Stones != 5 || s.White.Stones != 5 {
		t.Errorf("stones = %d/%d, want 5/5", s.Black.Stones, s.White.Stones)
	}
	if s.Black.Territory != 5 || s.White.Territory != 5 {
		t.Errorf("territory = %d/%d, want 5/5", s.Black.Territory, s.White.Territory)
	}
	if s.Dame != 5 {
		t.Errorf("dame = %d, want 5", s.Dame)
	}
	if s.Black.Prisoners != 7 || s.White.Komi != 6.5 || s.Black.Komi != 0 {
		t.Errorf("prisoners/komi not carried: %+v %+v", s.Black, s.White)
	}
}

func TestScoreRules(t *testing.T) {
	tests := []struct {
		name       string
		rule       Rule
		komi       float64
		prisonersB int
		prisonersW int
		wantBlack  float64
		wantWhite  float64
		wantWinner types.Color
		wantResult string
	}{
		{"chinese counts stones", Chinese, 6.5, 7, 0, 10, 16.5, types.White, "W+6.5"},
		{"japanese counts prisoners", Japanese, 6.5, 7, 0, 12, 11.5, types.Black, "B+0.5"},
		{"chinese tie", Chinese, 0, 0, 0, 10, 10, types.Empty, "0"},
		{"japanese tie", Japanese, 0, 2, 2, 7, 7, types.Empty, "0"},
		{"japanese white prisoners", Japanese, 0.5, 0, 3, 5, 8.5, types.White, "W+3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFrom(t, wallsDiagram...)
			s := count(b, tt.rule, tt.komi, tt.prisonersB, tt.prisonersW)
			if s.Black.Total != tt.wantBlack || s.White.Total != tt.wantWhite {
				t.Errorf("totals = %v/%v, want %v/%v", s.Black.Total, s.White.Total, tt.wantBlack, tt.wantWhite)
			}
			if s.Winner != tt.wantWinner {
				t.Errorf("winner = %s, want %s", s.Winner, tt.wantWinner)
			}
			if got := s.Result(); got != tt.wantResult {
				t.Errorf("Result() = %q, want %q", got, tt.wantResult)
			}
		})
	}
}

// The same position scored both ways differs by stones minus prisoners per color.
func TestChineseMinusJapanese(t *testing.T) {
	b := boardFrom(t,
		"XX.OO..",
		"X.XO.O.",
		"XXXOO..",
		"...XO..",
		".XX.XOO",
		"X..X.X.",
		"..X.X..",
	)
	const komi = 5.5
	pb, pw := 4, 9
	cn := count(b, Chinese, komi, pb, pw)
	jp := count(b, Japanese, komi, pb, pw)

	for _, c := range []types.Color{types.Black, types.White} {
		ct, jt := cn.Tally(c), jp.Tally(c)
		if ct.Total != float64(ct.Stones+ct.Territory)+ct.Komi {
			t.Errorf("%s chinese total %v, want stones %d + territory %d + komi %v", c, ct.Total, ct.Stones, ct.Territory, ct.Komi)
		}
		if jt.Total != float64(jt.Territory+jt.Prisoners)+jt.Komi {
			t.Errorf("%s japanese total %v, want territory %d + prisoners %d + komi %v", c, jt.Total, jt.Territory, jt.Prisoners, jt.Komi)
		}
		if diff := ct.Total - jt.Total; diff != float64(ct.Stones-jt.Prisoners) {
			t.Errorf("%s chinese - japanese = %v, want %d", c, diff, ct.Stones-jt.Prisoners)
		}
	}
}

func TestEmptyBoardIsAllDame(t *testing.T) {
	g := newGame(t, 9, WithKomi(6.5))
	mustPlay(t, g, Pass{}, Pass{})
	s := g.Status().Score
	if s.Dame != 81 || s.Black.Territory != 0 || s.White.Territory != 0 {
		t.Errorf("dame %d, territory %d/%d, want 81, 0/0", s.Dame, s.Black.Territory, s.White.Territory)
	}
	if s.Winner != types.White || s.Result() != "W+6.5" {
		t.Errorf("Result() = %q, want W+6.5", s.Result())
	}
	if got := g.Status().Describe(); got != "White wins by 6.5 points" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestGameScoresWithPrisoners(t *testing.T) {
	g, err := New(9, Japanese, WithKomi(0.5))
	if err != nil {
		t.Fatal(err)
	}
	mustPlay(t, g,
		PlayAt(1, 0), PlayAt(1, 1),
		PlayAt(0, 1), PlayAt(8, 8),
		PlayAt(2, 1), PlayAt(8, 7),
		PlayAt(1, 2), // captures (1,1)
		Pass{}, Pass{},
	)
	s := g.Status().Score
	if s.Rule != Japanese {
		t.Errorf("rule = %s, want japanese", s.Rule)
	}
	if s.Black.Prisoners != 1 {
		t.Errorf("black prisoners = %d, want 1", s.Black.Prisoners)
	}
	// (0,0) and the emptied (1,1) are black's, the rest touches both colors
	if s.Black.Territory != 2 || s.White.Territory != 0 {
		t.Errorf("territory = %d/%d, want 2/0", s.Black.Territory, s.White.Territory)
	}
	if s.Black.Total != 3 || s.White.Total != 0.5 {
		t.Errorf("totals = %v/%v, want 3/0.5", s.Black.Total, s.White.Total)
	}
}

func TestStatusStrings(t *testing.T) {
	tie := &Score{Rule: Chinese}
	tests := []struct {
		st           Status
		wantString   string
		wantResult   string
		wantDescribe string
	}{
		{Status{}, "in progress", "", "Game in progress"},
		{Status{Phase: Ended, Score: tie}, "Jigo", "0", "Jigo"},
		{Status{Phase: Resigned, Winner: types.White}, "W+R", "W+R", "White wins by resignation"},
		{
			Status{Phase: Ended, Winner: types.Black, Score: &Score{Black: Tally{Total: 10}, White: Tally{Total: 6.5}, Winner: types.Black}},
			"B+3.5", "B+3.5", "Black wins by 3.5 points",
		},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.wantString {
			t.Errorf("String() = %q, want %q", got, tt.wantString)
		}
		if got := tt.st.Result(); got != tt.wantResult {
			t.Errorf("Result() = %q, want %q", got, tt.wantResult)
		}
		if got := tt.st.Describe(); got != tt.wantDescribe {
			t.Errorf("Describe() = %q, want %q", got, tt.wantDescribe)
		}
	}
}

func TestTerritoryMap(t *testing.T) {
	g := newGame(t, 5)
	mustPlay(t, g,
		PlayAt(1, 0), PlayAt(3, 0),
		PlayAt(1, 1), PlayAt(3, 1),
		PlayAt(1, 2), PlayAt(3, 2),
		PlayAt(1, 3), PlayAt(3, 3),
		PlayAt(1, 4), PlayAt(3, 4),
	)
	owner := Territory(g.BoardSnapshot())
	if len(owner) != 5 {
		t.Fatalf("got %d rows, want 5", len(owner))
	}
	want := []types.Color{types.Black, types.Empty, types.Empty, types.Empty, types.White}
	for y, row := range owner {
		if !slices.Equal(row, want) {
			t.Errorf("row %d = %v, want %v", y, row, want)
		}
	}
	if Territory(types.NewBoardState(0)) != nil {
		t.Error("Territory of a zero-size board should be nil")
	}
}
