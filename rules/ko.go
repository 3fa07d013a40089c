package rules

import (
	"slices"

	"goban/types"
)

type position struct {
	hash  uint64
	cells []types.Color
}

// koDetector keeps the positions that stood after each completed move, oldest
// first. Under SimpleKo only the last two are needed and older ones are dropped.
type koDetector struct {
	rule    KoRule
	history []position
}

func newKoDetector(rule KoRule, b *Board) *koDetector {
	k := &koDetector{rule: rule}
	k.record(b)
	return k
}

func (k *koDetector) record(b *Board) {
	k.history = append(k.history, position{hash: b.hash, cells: slices.Clone(b.cells)})
	if k.rule == SimpleKo && len(k.history) > 2 {
		k.history = slices.Clone(k.history[len(k.history)-2:])
	}
}

// forbids reports whether the position eff leads to is banned. The full grid is
// only built and compared when a hash matches.
func (k *koDetector) forbids(b *Board, eff effect) bool {
	var candidates []position
	switch k.rule {
	case SimpleKo:
		// the position immediately before the opponent's most recent move
		if len(k.history) < 2 {
			return false
		}
		candidates = k.history[len(k.history)-2 : len(k.history)-1]
	case PositionalSuperko:
		candidates = k.history
	}

	var next []types.Color
	for _, pos := range candidates {
		if pos.hash != eff.hash {
			continue
		}
		if next == nil {
			next = b.resulting(eff).cells
		}
		if slices.Equal(pos.cells, next) {
			return true
		}
	}
	return false
}
