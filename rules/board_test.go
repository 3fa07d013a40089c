package rules

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"goban/types"
)

// boardFrom builds a board from rows of 'X' (black), 'O' (white) and '.' (empty).
// The diagram must not contain groups without liberties.
func boardFrom(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := newBoard(len(rows))
	if err != nil {
		t.Fatalf("newBoard(%d): %v", len(rows), err)
	}
	for y, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has %d points, want %d", y, len(row), len(rows))
		}
		for x, r := range row {
			var c types.Color
			switch r {
			case 'X':
				c = types.Black
			case 'O':
				c = types.White
			case '.':
				continue
			default:
				t.Fatalf("unexpected %q at (%d,%d)", r, x, y)
			}
			b.place(y*len(rows)+x, c)
		}
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("diagram does not verify: %v", err)
	}
	return b
}

func pt(x, y int) types.Point {
	return types.Point{X: x, Y: y}
}

func TestNewBoardSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{-1, true},
		{0, true},
		{1, false},
		{9, false},
		{19, false},
		{MaxSize, false},
		{MaxSize + 1, true},
	}
	for _, tt := range tests {
		b, err := newBoard(tt.size)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("newBoard(%d) error = %v, want ErrInvalidSize", tt.size, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("newBoard(%d): %v", tt.size, err)
			continue
		}
		if b.Size() != tt.size {
			t.Errorf("Size() = %d, want %d", b.Size(), tt.size)
		}
	}
}

func TestNeighbors(t *testing.T) {
	b, _ := newBoard(9)
	tests := []struct {
		p    types.Point
		want []types.Point
	}{
		{pt(0, 0), []types.Point{pt(1, 0), pt(0, 1)}},
		{pt(8, 8), []types.Point{pt(8, 7), pt(7, 8)}},
		{pt(4, 0), []types.Point{pt(3, 0), pt(5, 0), pt(4, 1)}},
		{pt(4, 4), []types.Point{pt(4, 3), pt(3, 4), pt(5, 4), pt(4, 5)}},
		{pt(9, 4), nil},
	}
	for _, tt := range tests {
		got := b.Neighbors(tt.p)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Neighbors(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPlaceMergesGroups(t *testing.T) {
	b := boardFrom(t,
		".....",
		".X.X.",
		".....",
		".....",
		".....",
	)
	b.place(b.l.index(pt(2, 1)), types.Black)
	if err := b.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	g, ok := b.GroupAt(pt(1, 1))
	if !ok {
		t.Fatal("no group at (1,1)")
	}
	wantStones := []types.Point{pt(1, 1), pt(2, 1), pt(3, 1)}
	if !slices.Equal(g.Stones, wantStones) {
		t.Errorf("Stones = %v, want %v", g.Stones, wantStones)
	}
	if len(g.Liberties) != 8 {
		t.Errorf("got %d liberties, want 8", len(g.Liberties))
	}
	other, _ := b.GroupAt(pt(3, 1))
	if !slices.Equal(other.Stones, g.Stones) {
		t.Errorf("(3,1) is in %v, want the merged group", other.Stones)
	}
}

func TestPlaceTakesEnemyLiberty(t *testing.T) {
	b := boardFrom(t,
		"...",
		".O.",
		"...",
	)
	b.place(b.l.index(pt(1, 0)), types.Black)
	g, _ := b.GroupAt(pt(1, 1))
	want := []types.Point{pt(0, 1), pt(2, 1), pt(1, 2)}
	if !slices.Equal(g.Liberties, want) {
		t.Errorf("Liberties = %v, want %v", g.Liberties, want)
	}
}

func TestRemoveGroupRestoresLiberties(t *testing.T) {
	b := boardFrom(t,
		".X...",
		"XOX..",
		".....",
		".....",
		".....",
	)
	// completes the capture of the white stone
	captured, alive := b.playAndCapture(b.l.index(pt(1, 2)), types.Black)
	if captured != 1 || !alive {
		t.Fatalf("playAndCapture = (%d, %v), want (1, true)", captured, alive)
	}
	if got := b.At(pt(1, 1)); got != types.Empty {
		t.Errorf("At(1,1) = %s, want empty", got)
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	g, _ := b.GroupAt(pt(1, 0))
	if !slices.Contains(g.Liberties, pt(1, 1)) {
		t.Errorf("(1,0) liberties %v do not include the freed point", g.Liberties)
	}
}

func TestGroupsOrder(t *testing.T) {
	b := boardFrom(t,
		"..O",
		"X..",
		"X.X",
	)
	groups := b.Groups()
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	wantFirst := []types.Point{pt(2, 0), pt(0, 1), pt(2, 2)}
	for i, g := range groups {
		if g.Stones[0] != wantFirst[i] {
			t.Errorf("group %d starts at %v, want %v", i, g.Stones[0], wantFirst[i])
		}
	}
}

func TestHashIncremental(t *testing.T) {
	a := boardFrom(t,
		"X.O",
		".X.",
		"O..",
	)
	b := boardFrom(t,
		"X.O",
		".X.",
		"O..",
	)
	if a.Hash() != b.Hash() {
		t.Errorf("equal positions hash differently: %#x vs %#x", a.Hash(), b.Hash())
	}
	if a.Hash() != a.l.hashCells(a.cells) {
		t.Errorf("incremental hash %#x, recomputed %#x", a.Hash(), a.l.hashCells(a.cells))
	}
	empty, _ := newBoard(3)
	if empty.Hash() != 0 {
		t.Errorf("empty board hash = %#x, want 0", empty.Hash())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := boardFrom(t,
		"...",
		".X.",
		"...",
	)
	c := b.clone()
	c.place(c.l.index(pt(1, 0)), types.White)
	if b.At(pt(1, 0)) != types.Empty {
		t.Error("placing on the clone changed the original")
	}
	g, _ := b.GroupAt(pt(1, 1))
	if len(g.Liberties) != 4 {
		t.Errorf("original group has %d liberties, want 4", len(g.Liberties))
	}
	if err := b.Verify(); err != nil {
		t.Errorf("original Verify: %v", err)
	}
	if err := c.Verify(); err != nil {
		t.Errorf("clone Verify: %v", err)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	b := boardFrom(t,
		"...",
		".X.",
		"...",
	)
	delete(b.groups[b.l.index(pt(1, 1))].libs, b.l.index(pt(1, 0)))
	if err := b.Verify(); err == nil {
		t.Error("Verify accepted a group with a missing liberty")
	}
}

// Every reachable position keeps groups and liberties equal to a recomputation.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for _, size := range []int{5, 9, 13, 19} {
		rng := rand.New(rand.NewPCG(uint64(size), 7))
		g, err := New(size, Chinese)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		for n := 0; n < size*size*3 && !g.Status().Over(); n++ {
			legal := slices.Collect(g.LegalMoves())
			if len(legal) == 0 || rng.IntN(20) == 0 {
				if err := g.Pass(); err != nil {
					t.Fatalf("size %d move %d: Pass: %v", size, n, err)
				}
				continue
			}
			p := legal[rng.IntN(len(legal))]
			if err := g.Play(Play{Point: p}); err != nil {
				t.Fatalf("size %d move %d: Play(%v) of a listed legal move: %v", size, n, p, err)
			}
			if err := g.Verify(); err != nil {
				t.Fatalf("size %d move %d: %v", size, n, err)
			}
		}
	}
}
