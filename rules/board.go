package rules

import (
	"fmt"
	"slices"

	"goban/types"
)

// MaxSize is the largest supported board dimension.
const MaxSize = 25

// group is a maximal chain of same-colored stones and its liberties.
// Every stone on the board points at exactly one group.
type group struct {
	color  types.Color
	stones []int
	libs   map[int]struct{}
}

// Board is the authoritative grid plus the incrementally maintained groups.
// The zero value is not usable; boards are created by New along with their Game.
type Board struct {
	l      *layout
	cells  []types.Color
	groups []*group // nil for empty points
	hash   uint64
}

func newBoard(size int) (*Board, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: desired size is %[2]dx%[2]d", ErrInvalidSize, size)
	}
	return &Board{
		l:      layoutFor(size),
		cells:  make([]types.Color, size*size),
		groups: make([]*group, size*size),
	}, nil
}

// Size returns N for an N×N board.
func (b *Board) Size() int {
	return b.l.size
}

// Hash returns the Zobrist hash of the current position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p types.Point) bool {
	return b.l.inBounds(p)
}

// At returns the color at p, or Empty when p is off the board.
func (b *Board) At(p types.Point) types.Color {
	if !b.l.inBounds(p) {
		return types.Empty
	}
	return b.cells[b.l.index(p)]
}

// Neighbors returns the orthogonally adjacent in-bounds points of p.
func (b *Board) Neighbors(p types.Point) []types.Point {
	if !b.l.inBounds(p) {
		return nil
	}
	adj := b.l.adj[b.l.index(p)]
	out := make([]types.Point, len(adj))
	for i, n := range adj {
		out[i] = b.l.point(n)
	}
	return out
}

// GroupAt returns the group containing p, or false if p is empty or off the board.
func (b *Board) GroupAt(p types.Point) (Group, bool) {
	if !b.l.inBounds(p) {
		return Group{}, false
	}
	g := b.groups[b.l.index(p)]
	if g == nil {
		return Group{}, false
	}
	return b.view(g), true
}

// Groups returns every group on the board, ordered by the row-major index of
// each group's first stone.
func (b *Board) Groups() []Group {
	var out []Group
	seen := make(map[*group]bool)
	for _, g := range b.groups {
		if g == nil || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, b.view(g))
	}
	return out
}

// place sets the empty point i to c, merges it with adjacent friendly groups and
// takes i away from the liberties of adjacent enemy groups.
func (b *Board) place(i int, c types.Color) {
	b.cells[i] = c
	b.hash ^= b.l.key(i, c)

	merged := &group{color: c, stones: []int{i}, libs: make(map[int]struct{})}
	for _, n := range b.l.adj[i] {
		switch b.cells[n] {
		case types.Empty:
			merged.libs[n] = struct{}{}
		case c:
			friend := b.groups[n]
			if friend == merged {
				continue
			}
			merged.stones = append(merged.stones, friend.stones...)
			for lib := range friend.libs {
				merged.libs[lib] = struct{}{}
			}
			for _, s := range friend.stones {
				b.groups[s] = merged
			}
		default:
			delete(b.groups[n].libs, i)
		}
	}
	delete(merged.libs, i)
	b.groups[i] = merged
}

// removeGroup empties every stone of g and hands the freed points back as
// liberties to the groups around them.
func (b *Board) removeGroup(g *group) {
	for _, s := range g.stones {
		b.cells[s] = types.Empty
		b.hash ^= b.l.key(s, g.color)
		b.groups[s] = nil
	}
	for _, s := range g.stones {
		for _, n := range b.l.adj[s] {
			if other := b.groups[n]; other != nil {
				other.libs[s] = struct{}{}
			}
		}
	}
}

func (b *Board) clone() *Board {
	nb := &Board{
		l:      b.l,
		cells:  slices.Clone(b.cells),
		groups: make([]*group, len(b.groups)),
		hash:   b.hash,
	}
	copies := make(map[*group]*group)
	for i, g := range b.groups {
		if g == nil {
			continue
		}
		cp, ok := copies[g]
		if !ok {
			cp = &group{
				color:  g.color,
				stones: slices.Clone(g.stones),
				libs:   make(map[int]struct{}, len(g.libs)),
			}
			for lib := range g.libs {
				cp.libs[lib] = struct{}{}
			}
			copies[g] = cp
		}
		nb.groups[i] = cp
	}
	return nb
}

// flood walks the connected region of points sharing the color of start, using an
// explicit stack. edge is called for every neighboring point of a different color,
// once per adjacency. seen is shared so callers can sweep the whole board.
func (b *Board) flood(start int, seen []bool, edge func(n int)) []int {
	want := b.cells[start]
	stack := []int{start}
	seen[start] = true
	var region []int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, i)
		for _, n := range b.l.adj[i] {
			if b.cells[n] != want {
				if edge != nil {
					edge(n)
				}
				continue
			}
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return region
}

// Verify recomputes every group and liberty set from scratch and checks them
// against the incrementally maintained ones.
func (b *Board) Verify() error {
	if h := b.l.hashCells(b.cells); h != b.hash {
		return fmt.Errorf("hash mismatch: have %#x, recomputed %#x", b.hash, h)
	}
	seen := make([]bool, len(b.cells))
	for i, c := range b.cells {
		if c == types.Empty {
			if b.groups[i] != nil {
				return fmt.Errorf("empty point %v belongs to a group", b.l.point(i))
			}
			continue
		}
		if seen[i] {
			continue
		}
		libs := make(map[int]struct{})
		stones := b.flood(i, seen, func(n int) {
			if b.cells[n] == types.Empty {
				libs[n] = struct{}{}
			}
		})
		g := b.groups[i]
		if g == nil {
			return fmt.Errorf("stone at %v has no group", b.l.point(i))
		}
		if g.color != c {
			return fmt.Errorf("group at %v is %s, stone is %s", b.l.point(i), g.color, c)
		}
		for _, s := range stones {
			if b.groups[s] != g {
				return fmt.Errorf("stones %v and %v are connected but in different groups", b.l.point(i), b.l.point(s))
			}
		}
		if len(g.stones) != len(stones) {
			return fmt.Errorf("group at %v has %d stones, flood fill found %d", b.l.point(i), len(g.stones), len(stones))
		}
		if len(g.libs) != len(libs) {
			return fmt.Errorf("group at %v has %d liberties, flood fill found %d", b.l.point(i), len(g.libs), len(libs))
		}
		for lib := range libs {
			if _, ok := g.libs[lib]; !ok {
				return fmt.Errorf("group at %v is missing liberty %v", b.l.point(i), b.l.point(lib))
			}
		}
	}
	return nil
}

// Group is a read-only view of a chain of stones. Stones and Liberties are sorted
// in row-major order.
type Group struct {
	Color     types.Color
	Stones    []types.Point
	Liberties []types.Point
}

func (b *Board) view(g *group) Group {
	stones := slices.Clone(g.stones)
	slices.Sort(stones)
	libs := make([]int, 0, len(g.libs))
	for lib := range g.libs {
		libs = append(libs, lib)
	}
	slices.Sort(libs)

	v := Group{
		Color:     g.color,
		Stones:    make([]types.Point, len(stones)),
		Liberties: make([]types.Point, len(libs)),
	}
	for i, s := range stones {
		v.Stones[i] = b.l.point(s)
	}
	for i, lib := range libs {
		v.Liberties[i] = b.l.point(lib)
	}
	return v
}
