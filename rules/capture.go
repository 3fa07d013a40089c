package rules

import "goban/types"

// captureAround removes every enemy group next to i that has no liberties left and
// returns how many stones were taken. It must run right after place(i, ...), before
// the mover's own group is checked for liberties.
func (b *Board) captureAround(i int) int {
	enemy := b.cells[i].Opponent()
	taken := 0
	for _, n := range b.l.adj[i] {
		if b.cells[n] != enemy {
			continue
		}
		g := b.groups[n]
		if len(g.libs) == 0 {
			taken += len(g.stones)
			b.removeGroup(g)
		}
	}
	return taken
}

// playAndCapture places c at i and resolves captures. It reports whether the
// mover's own group still has liberties afterwards.
func (b *Board) playAndCapture(i int, c types.Color) (captured int, alive bool) {
	b.place(i, c)
	captured = b.captureAround(i)
	return captured, len(b.groups[i].libs) > 0
}
