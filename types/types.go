// Package types contains shared data structures for goban.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color is the state of a single intersection: empty or holding a stone.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Empty has no opponent and maps to itself.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// IsStone reports whether c is Black or White.
func (c Color) IsStone() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Point is a coordinate on the board. X grows left to right, Y top to bottom.
type Point struct {
	X int
	Y int
}

// NoPoint marks the absence of a coordinate, e.g. the last move of a fresh game or a pass.
var NoPoint = Point{X: -1, Y: -1}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// MarshalJSON writes a Point as a JSON array [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON allows Point to be unmarshaled from a JSON array [x, y].
func (p *Point) UnmarshalJSON(data []byte) error {
	var v []float64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("point: expected [x, y], got %d values", len(v))
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// Position is the raw data a producer freezes into a BoardState.
type Position struct {
	Size           int
	Cells          []Color // row-major, len Size*Size
	MoveNumber     int
	ToMove         Color
	Finished       bool
	Outcome        string
	LastMove       Point
	BlackPrisoners int
	WhitePrisoners int
}

// BoardState is a read-only snapshot of a Go board. It owns a private copy of the
// grid, so holding one never aliases the game that produced it.
type BoardState struct {
	pos Position
}

// NewBoardState creates a snapshot of an empty board of the given size, Black to move.
func NewBoardState(size int) *BoardState {
	if size < 0 {
		size = 0
	}
	return &BoardState{pos: Position{
		Size:     size,
		Cells:    make([]Color, size*size),
		ToMove:   Black,
		LastMove: NoPoint,
	}}
}

// Freeze copies pos into a new snapshot.
func Freeze(pos Position) *BoardState {
	cells := make([]Color, pos.Size*pos.Size)
	copy(cells, pos.Cells)
	pos.Cells = cells
	return &BoardState{pos: pos}
}

// Size returns the board dimension N of an N×N board.
func (b *BoardState) Size() int {
	return b.pos.Size
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return b.pos.Size
}

// Width returns the board width.
func (b *BoardState) Width() int {
	return b.pos.Size
}

// At returns the color at (x, y), or Empty when the coordinate is off the board.
func (b *BoardState) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.pos.Size || y >= b.pos.Size {
		return Empty
	}
	return b.pos.Cells[y*b.pos.Size+x]
}

// AtPoint is At for a Point.
func (b *BoardState) AtPoint(p Point) Color {
	return b.At(p.X, p.Y)
}

// Rows returns a fresh copy of the grid indexed as rows[y][x].
func (b *BoardState) Rows() [][]Color {
	rows := make([][]Color, b.pos.Size)
	for y := range rows {
		rows[y] = make([]Color, b.pos.Size)
		copy(rows[y], b.pos.Cells[y*b.pos.Size:(y+1)*b.pos.Size])
	}
	return rows
}

// Stones counts the stones of color c on the board.
func (b *BoardState) Stones(c Color) int {
	n := 0
	for _, cell := range b.pos.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// MoveNumber returns the number of moves (including passes) played so far.
func (b *BoardState) MoveNumber() int {
	return b.pos.MoveNumber
}

// PlayerToMove returns the side to move. It is Empty once the game is over.
func (b *BoardState) PlayerToMove() Color {
	return b.pos.ToMove
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.pos.Finished
}

// Phase returns "playing" or "finished".
func (b *BoardState) Phase() string {
	if b.pos.Finished {
		return "finished"
	}
	return "playing"
}

// Outcome returns the result string of a finished game, empty while playing.
func (b *BoardState) Outcome() string {
	return b.pos.Outcome
}

// LastMove returns the coordinate of the last stone played, or NoPoint.
func (b *BoardState) LastMove() Point {
	return b.pos.LastMove
}

// Prisoners returns how many stones color c has captured.
func (b *BoardState) Prisoners(c Color) int {
	switch c {
	case Black:
		return b.pos.BlackPrisoners
	case White:
		return b.pos.WhitePrisoners
	}
	return 0
}

// String draws the board as text, one row per line: X for black, O for white,
// . for an empty point.
func (b *BoardState) String() string {
	var sb strings.Builder
	for y := 0; y < b.pos.Size; y++ {
		for x := 0; x < b.pos.Size; x++ {
			switch b.pos.Cells[y*b.pos.Size+x] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type boardStateJSON struct {
	MoveNumber   int     `json:"move_number"`
	PlayerToMove int     `json:"player_to_move"` // 1=black, 2=white
	Phase        string  `json:"phase"`          // "playing", "finished"
	Board        [][]int `json:"board"`
	Outcome      string  `json:"outcome"`
	LastMove     Point   `json:"last_move"`
	Prisoners    [2]int  `json:"prisoners"` // [black, white]
}

// MarshalJSON encodes the snapshot with the board as rows of 0=empty, 1=black, 2=white.
func (b *BoardState) MarshalJSON() ([]byte, error) {
	board := make([][]int, b.pos.Size)
	for y := range board {
		board[y] = make([]int, b.pos.Size)
		for x := range board[y] {
			board[y][x] = int(b.pos.Cells[y*b.pos.Size+x])
		}
	}
	return json.Marshal(boardStateJSON{
		MoveNumber:   b.pos.MoveNumber,
		PlayerToMove: int(b.pos.ToMove),
		Phase:        b.Phase(),
		Board:        board,
		Outcome:      b.pos.Outcome,
		LastMove:     b.pos.LastMove,
		Prisoners:    [2]int{b.pos.BlackPrisoners, b.pos.WhitePrisoners},
	})
}
