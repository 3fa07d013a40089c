package rules

import (
	"fmt"

	"goban/types"
)

// Move is one of Play, Pass or Resign. The set is closed: only this package can
// add implementations, so a type switch over the three cases is exhaustive.
type Move interface {
	isMove()
	String() string
}

// Play puts a stone of the side to move on Point.
type Play struct {
	Point types.Point
}

// PlayAt is shorthand for Play{Point: types.Point{X: x, Y: y}}.
func PlayAt(x, y int) Play {
	return Play{Point: types.Point{X: x, Y: y}}
}

// Pass gives up the turn.
type Pass struct{}

// Resign concedes the game on behalf of Color.
type Resign struct {
	Color types.Color
}

func (Play) isMove()   {}
func (Pass) isMove()   {}
func (Resign) isMove() {}

func (m Play) String() string {
	return fmt.Sprintf("play %d,%d", m.Point.X, m.Point.Y)
}

func (Pass) String() string {
	return "pass"
}

func (m Resign) String() string {
	return fmt.Sprintf("resign %s", m.Color)
}

// Turn is an accepted move together with the color that made it.
type Turn struct {
	Color types.Color
	Move  Move
}
