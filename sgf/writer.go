// Package sgf implements SGF FF[4] writing and reading for Go game records.
package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"goban/rules"
	"goban/types"
)

// GameSetup describes the game written to a new record.
type GameSetup struct {
	BoardSize   int
	Komi        float64
	Rule        rules.Rule
	PlayerBlack string
	PlayerWhite string
}

// GameRecord tracks a game in progress and writes it as SGF.
type GameRecord struct {
	FilePath    string
	ID          string
	BoardSize   int
	Komi        float64
	Rule        rules.Rule
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	moves       []string // ";B[pd]", ";W[dp]", ...
	file        *os.File
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
func NewGameRecord(dir string, setup GameSetup) (*GameRecord, error) {
	if setup.BoardSize < 1 || setup.BoardSize > rules.MaxSize {
		return nil, fmt.Errorf("%w: desired size is %[2]dx%[2]d", rules.ErrInvalidSize, setup.BoardSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s_%dx%d.sgf", now.Format("2006-01-02_150405"), id[:8], setup.BoardSize, setup.BoardSize)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sgf file: %w", err)
	}

	rec := &GameRecord{
		FilePath:    path,
		ID:          id,
		BoardSize:   setup.BoardSize,
		Komi:        setup.Komi,
		Rule:        setup.Rule,
		PlayerBlack: setup.PlayerBlack,
		PlayerWhite: setup.PlayerWhite,
		Date:        now.Format("2006-01-02"),
		Result:      "?",
		file:        f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,4) -> "de", (18,18) -> "ss".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

func colorLetter(c types.Color) string {
	if c == types.White {
		return "W"
	}
	return "B"
}

// AddMove appends a move made by color to the record. A resignation adds no node
// and sets the result instead.
func (r *GameRecord) AddMove(m rules.Move, color types.Color) error {
	if !color.IsStone() {
		return fmt.Errorf("%w: cannot record a move by %s", rules.ErrInvalidColor, color)
	}

	var node string
	switch m := m.(type) {
	case rules.Play:
		if m.Point.X < 0 || m.Point.Y < 0 || m.Point.X >= r.BoardSize || m.Point.Y >= r.BoardSize {
			return fmt.Errorf("%w: %v on a %dx%d board", rules.ErrOutOfBounds, m.Point, r.BoardSize, r.BoardSize)
		}
		node = fmt.Sprintf(";%s[%s]", colorLetter(color), sgfCoord(m.Point.X, m.Point.Y))
	case rules.Pass:
		node = fmt.Sprintf(";%s[]", colorLetter(color))
	case rules.Resign:
		r.Result = colorLetter(m.Color.Opponent()) + "+R"
		return r.flush()
	default:
		return fmt.Errorf("unsupported move %T", m)
	}

	r.moves = append(r.moves, node)
	return r.flush()
}

// UndoMoves removes the last n moves from the record.
func (r *GameRecord) UndoMoves(n int) error {
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	r.Result = "?"
	return r.flush()
}

// MoveCount returns the number of move nodes written so far.
func (r *GameRecord) MoveCount() int {
	return len(r.moves)
}

// SetResult sets the SGF RE property from the game status.
// A game still in progress is written as "?".
func (r *GameRecord) SetResult(st rules.Status) error {
	r.Result = st.Result()
	if r.Result == "" {
		r.Result = "?"
	}
	return r.flush()
}

// Close performs a final flush and closes the file handle. Calling it again is a no-op.
func (r *GameRecord) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.flush()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	r.file = nil
	return err
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder

	// Root node
	b.WriteString("(;GM[1]FF[4]CA[UTF-8]")
	b.WriteString("AP[goban:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", r.BoardSize))
	b.WriteString(fmt.Sprintf("KM[%.1f]", r.Komi))
	b.WriteString(fmt.Sprintf("RU[%s]", ruleName(r.Rule)))
	b.WriteString(fmt.Sprintf("PB[%s]", escape(r.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escape(r.PlayerWhite)))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	b.WriteString(fmt.Sprintf("GN[%s]", r.ID))
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	// Move nodes
	for _, m := range r.moves {
		b.WriteString(m)
	}

	b.WriteString(")\n")

	// Rewrite file from start
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// ruleName is the RU value for a rule, in the spelling most SGF editors expect.
func ruleName(rule rules.Rule) string {
	switch rule {
	case rules.Japanese:
		return "Japanese"
	default:
		return "Chinese"
	}
}

// escape protects ] and \ inside a property value.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// parseResult converts various outcome formats to SGF RE[] value.
func parseResult(outcome string) string {
	o := strings.TrimSpace(outcome)

	// Already in SGF format
	if isValidSGFResult(o) {
		return o
	}

	low := strings.ToLower(o)
	if low == "jigo" || low == "draw" {
		return "0"
	}

	// "White wins by 5.5 points" / "Black wins by 5.5 points"
	// "White wins by resign" / "Black wins by resignation"
	var winner string
	switch {
	case strings.HasPrefix(low, "white wins"):
		winner = "W"
	case strings.HasPrefix(low, "black wins"):
		winner = "B"
	default:
		return "?"
	}

	byIdx := strings.Index(low, " by ")
	if byIdx == -1 {
		return winner + "+?"
	}
	rest := strings.TrimSpace(low[byIdx+4:])

	if strings.HasPrefix(rest, "resign") {
		return winner + "+R"
	}
	if strings.HasPrefix(rest, "time") {
		return winner + "+T"
	}
	if strings.HasPrefix(rest, "forfeit") {
		return winner + "+F"
	}

	// Try to extract numeric score: "5.5 points" or "5.5"
	parts := strings.Fields(rest)
	if len(parts) > 0 && isScore(parts[0]) {
		return winner + "+" + parts[0]
	}

	return winner + "+?"
}

// isValidSGFResult checks if a string is already a valid SGF result.
func isValidSGFResult(s string) bool {
	if s == "?" || s == "Void" || s == "0" || s == "Draw" {
		return true
	}
	if len(s) < 3 {
		return false
	}
	if (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	rest := s[2:]
	if rest == "R" || rest == "T" || rest == "F" || rest == "?" {
		return true
	}
	return isScore(rest)
}

// isScore accepts an unsigned decimal with at most one dot.
func isScore(s string) bool {
	dotSeen := false
	for _, ch := range s {
		if ch == '.' {
			if dotSeen {
				return false
			}
			dotSeen = true
		} else if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0 && s != "."
}
