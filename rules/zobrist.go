package rules

import (
	"sync"

	"goban/types"
)

const zobristSeed = 172_147_124

// layout holds everything about an N×N board that does not depend on the stones:
// orthogonal adjacency and the Zobrist keys. Layouts are immutable once built and
// shared between all boards of the same size.
type layout struct {
	size int
	adj  [][]int
	keys []uint64 // two keys per point: black, white
}

type layoutStore struct {
	mu     sync.Mutex
	bySize map[int]*layout
}

var layouts = &layoutStore{bySize: make(map[int]*layout)}

func layoutFor(size int) *layout {
	layouts.mu.Lock()
	defer layouts.mu.Unlock()
	if l, ok := layouts.bySize[size]; ok {
		return l
	}
	l := &layout{
		size: size,
		adj:  make([][]int, size*size),
		keys: make([]uint64, size*size*2),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			// fixed order: up, left, right, down
			if y > 0 {
				l.adj[i] = append(l.adj[i], i-size)
			}
			if x > 0 {
				l.adj[i] = append(l.adj[i], i-1)
			}
			if x < size-1 {
				l.adj[i] = append(l.adj[i], i+1)
			}
			if y < size-1 {
				l.adj[i] = append(l.adj[i], i+size)
			}
		}
	}
	rng := splitmix64{state: zobristSeed ^ uint64(size)}
	for i := range l.keys {
		l.keys[i] = rng.next()
	}
	layouts.bySize[size] = l
	return l
}

func (l *layout) key(i int, c types.Color) uint64 {
	k := i * 2
	if c == types.White {
		k++
	}
	return l.keys[k]
}

func (l *layout) index(p types.Point) int {
	return p.Y*l.size + p.X
}

func (l *layout) point(i int) types.Point {
	return types.Point{X: i % l.size, Y: i / l.size}
}

func (l *layout) inBounds(p types.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.size && p.Y < l.size
}

// hashCells computes the Zobrist hash of a full grid from scratch.
func (l *layout) hashCells(cells []types.Color) uint64 {
	var h uint64
	for i, c := range cells {
		if c.IsStone() {
			h ^= l.key(i, c)
		}
	}
	return h
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
