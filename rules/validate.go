package rules

import (
	"fmt"

	"goban/types"
)

// effect is the predicted outcome of playing color at point on the current board.
type effect struct {
	point    int
	color    types.Color
	captured int
	hash     uint64 // position hash after the move
}

// analyze decides occupation and suicide for c at i without touching the board.
// Captures are accounted for first: taking the last liberty of an adjacent enemy
// group always frees at least one point next to the new stone.
func (b *Board) analyze(i int, c types.Color) (effect, error) {
	p := b.l.point(i)
	if b.cells[i] != types.Empty {
		return effect{}, fmt.Errorf("%w: at %v", ErrOccupied, p)
	}

	eff := effect{point: i, color: c, hash: b.hash ^ b.l.key(i, c)}
	breathes := false
	var doomed []*group
	for _, n := range b.l.adj[i] {
		switch b.cells[n] {
		case types.Empty:
			breathes = true
		case c:
			if len(b.groups[n].libs) > 1 {
				breathes = true
			}
		default:
			g := b.groups[n]
			if len(g.libs) != 1 || containsGroup(doomed, g) {
				continue
			}
			doomed = append(doomed, g)
			eff.captured += len(g.stones)
			for _, s := range g.stones {
				eff.hash ^= b.l.key(s, g.color)
			}
		}
	}
	if len(doomed) > 0 {
		breathes = true
	}
	if !breathes {
		return effect{}, fmt.Errorf("%w: at %v", ErrSuicide, p)
	}
	return eff, nil
}

// resulting builds the board that eff would produce, on a scratch copy.
func (b *Board) resulting(eff effect) *Board {
	scratch := b.clone()
	scratch.playAndCapture(eff.point, eff.color)
	return scratch
}

func containsGroup(gs []*group, g *group) bool {
	for _, x := range gs {
		if x == g {
			return true
		}
	}
	return false
}
