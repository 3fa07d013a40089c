// Package gtp converts between board points and GTP (Go Text Protocol) vertices.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"goban/rules"
	"goban/types"
)

// GTP coordinate system:
// - Columns: A-Z (skipping I to avoid confusion with 1), enough for 25x25
// - Rows: 1-25 (from bottom of board)
// - Example: D4, Q16, K10
//
// Board coordinate system:
// - X: 0-18 (left to right)
// - Y: 0-18 (top to bottom)
// - Example: (3, 15) for D4 on a 19x19 board

// Vertex converts a point (0-indexed, top-left origin) to GTP notation.
// For a 19x19 board: (0, 18) -> A1, (3, 15) -> D4, (15, 3) -> Q16
func Vertex(p types.Point, size int) string {
	// Column: A-Z, skipping I
	col := 'A' + rune(p.X)
	if p.X >= 8 {
		col++ // Skip 'I'
	}

	// Row: 1-N from bottom, so invert Y
	row := size - p.Y

	return fmt.Sprintf("%c%d", col, row)
}

// MoveString renders a move in GTP notation: a vertex, "pass" or "resign".
func MoveString(m rules.Move, size int) string {
	switch m := m.(type) {
	case rules.Play:
		return Vertex(m.Point, size)
	case rules.Pass:
		return "pass"
	case rules.Resign:
		return "resign"
	}
	return "?"
}

// ParseMove converts GTP notation to a move for color. It accepts a vertex,
// "pass" or "resign" in any case.
// For a 19x19 board: A1 -> (0, 18), D4 -> (3, 15), Q16 -> (15, 3)
func ParseMove(vertex string, size int, color types.Color) (rules.Move, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))

	switch vertex {
	case "PASS":
		return rules.Pass{}, nil
	case "RESIGN":
		return rules.Resign{Color: color}, nil
	}

	if len(vertex) < 2 {
		return nil, fmt.Errorf("invalid vertex: %s", vertex)
	}

	// Parse column (A-Z, no I)
	letter := vertex[0]
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return nil, fmt.Errorf("invalid column in vertex: %s", vertex)
	}
	col := int(letter - 'A')
	if col > 7 {
		col-- // Account for skipped 'I'
	}

	// Parse row
	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid row in vertex: %s", vertex)
	}

	// Convert row to Y coordinate (invert from bottom-up to top-down)
	y := size - row

	if col >= size || y < 0 || y >= size {
		return nil, fmt.Errorf("%w: vertex %s on a %dx%d board", rules.ErrOutOfBounds, vertex, size, size)
	}

	return rules.PlayAt(col, y), nil
}

// ParseColor converts a GTP color string to a stone color.
func ParseColor(color string) (types.Color, error) {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "black", "b":
		return types.Black, nil
	case "white", "w":
		return types.White, nil
	}
	return types.Empty, fmt.Errorf("%w: %q", rules.ErrInvalidColor, color)
}
