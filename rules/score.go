package rules

import (
	"fmt"
	"strconv"

	"goban/types"
)

// Tally is one color's side of a Score. Every component is filled in regardless of
// the rule; Total only adds the components the rule counts.
type Tally struct {
	Stones    int
	Territory int
	Prisoners int
	Komi      float64
	Total     float64
}

// Score is the result of counting a finished board. Stones still on the board are
// all treated as alive: there is no dead stone removal before counting.
type Score struct {
	Rule   Rule
	Black  Tally
	White  Tally
	Dame   int
	Winner types.Color // Empty on a tie
}

// Tally returns the side of the score belonging to c.
func (s *Score) Tally(c types.Color) Tally {
	if c == types.White {
		return s.White
	}
	return s.Black
}

// Margin is the absolute difference between the two totals.
func (s *Score) Margin() float64 {
	d := s.Black.Total - s.White.Total
	if d < 0 {
		return -d
	}
	return d
}

// Result formats the score in SGF RE notation: "B+3.5", "W+12", or "0" for a tie.
func (s *Score) Result() string {
	switch s.Winner {
	case types.Black:
		return "B+" + formatPoints(s.Margin())
	case types.White:
		return "W+" + formatPoints(s.Margin())
	}
	return "0"
}

func (s *Score) String() string {
	return fmt.Sprintf("%s: black %s, white %s (%s)", s.Rule,
		formatPoints(s.Black.Total), formatPoints(s.White.Total), s.Result())
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// count scores b under rule. Komi goes to White.
func count(b *Board, rule Rule, komi float64, blackPrisoners, whitePrisoners int) *Score {
	s := &Score{Rule: rule}
	s.Black.Prisoners = blackPrisoners
	s.White.Prisoners = whitePrisoners
	s.White.Komi = komi

	owner := territory(b)
	for i, c := range b.cells {
		switch c {
		case types.Black:
			s.Black.Stones++
		case types.White:
			s.White.Stones++
		default:
			switch owner[i] {
			case types.Black:
				s.Black.Territory++
			case types.White:
				s.White.Territory++
			default:
				s.Dame++
			}
		}
	}

	for _, t := range []*Tally{&s.Black, &s.White} {
		t.Total = float64(t.Territory) + t.Komi
		switch rule {
		case Chinese:
			t.Total += float64(t.Stones)
		case Japanese:
			t.Total += float64(t.Prisoners)
		}
	}

	switch {
	case s.Black.Total > s.White.Total:
		s.Winner = types.Black
	case s.White.Total > s.Black.Total:
		s.Winner = types.White
	}
	return s
}

// territory assigns each empty point to the color that alone borders its empty
// region. Dame and stones map to Empty.
func territory(b *Board) []types.Color {
	owner := make([]types.Color, len(b.cells))
	seen := make([]bool, len(b.cells))
	for i, c := range b.cells {
		if c != types.Empty || seen[i] {
			continue
		}
		var touchesBlack, touchesWhite bool
		region := b.flood(i, seen, func(n int) {
			switch b.cells[n] {
			case types.Black:
				touchesBlack = true
			case types.White:
				touchesWhite = true
			}
		})
		var who types.Color
		switch {
		case touchesBlack && !touchesWhite:
			who = types.Black
		case touchesWhite && !touchesBlack:
			who = types.White
		default:
			continue
		}
		for _, r := range region {
			owner[r] = who
		}
	}
	return owner
}

// Territory returns, for a snapshot, the owner of every point indexed as
// owner[y][x]: the color surrounding an empty region alone, Empty for dame and
// for points holding a stone.
func Territory(s *types.BoardState) [][]types.Color {
	size := s.Size()
	if size < 1 || size > MaxSize {
		return nil
	}
	b := &Board{l: layoutFor(size), cells: make([]types.Color, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			b.cells[y*size+x] = s.At(x, y)
		}
	}
	flat := territory(b)
	out := make([][]types.Color, size)
	for y := range out {
		out[y] = flat[y*size : (y+1)*size]
	}
	return out
}
