package sgf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"goban/rules"
	"goban/types"
)

// ErrSetupStones is returned when replaying a record that places stones with
// AB/AW instead of playing them.
var ErrSetupStones = errors.New("setup stones (AB/AW) are not supported")

// GameInfo holds metadata parsed from an SGF file header.
type GameInfo struct {
	FilePath    string
	FileName    string
	ID          string
	BoardSize   int
	Komi        float64
	Rule        rules.Rule
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	MoveCount   int
}

// ParseHeader reads an SGF file and extracts metadata from the root node.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return parseHeader(filePath, string(data)), nil
}

func parseHeader(filePath, content string) *GameInfo {
	props := parseProperties(content)

	boardSize := 19
	if v, ok := props["SZ"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			boardSize = n
		}
	}

	komi := 0.0
	if v, ok := props["KM"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			komi = f
		}
	}

	// unknown rule sets are counted as area scoring
	rule, err := rules.ParseRule(props["RU"])
	if err != nil {
		rule = rules.Chinese
	}

	result := props["RE"]
	if result != "" {
		result = parseResult(result)
	}

	return &GameInfo{
		FilePath:    filePath,
		FileName:    filepath.Base(filePath),
		ID:          props["GN"],
		BoardSize:   boardSize,
		Komi:        komi,
		Rule:        rule,
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		Date:        props["DT"],
		Result:      result,
		MoveCount:   countMoves(content),
	}
}

// Replay parses an SGF file and plays every move through a new rules.Game. The
// record's rule and komi are used and the first move decides who starts. A
// resignation in RE ends the replayed game the same way. Extra options are
// applied after the ones derived from the file.
func Replay(filePath string, opts ...rules.Option) (*rules.Game, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	content := string(data)
	info := parseHeader(filePath, content)

	if hasSetup(content) {
		return nil, fmt.Errorf("replay %s: %w", info.FileName, ErrSetupStones)
	}

	type node struct {
		color types.Color
		move  rules.Move
	}
	var moves []node
	for _, n := range parseNodes(content) {
		color, move, ok := parseMoveNode(n, info.BoardSize)
		if ok {
			moves = append(moves, node{color, move})
		}
	}

	base := []rules.Option{rules.WithKomi(info.Komi)}
	if len(moves) > 0 {
		base = append(base, rules.WithStartingColor(moves[0].color))
	}
	g, err := rules.New(info.BoardSize, info.Rule, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", info.FileName, err)
	}

	for i, m := range moves {
		if m.color != g.ToMove() {
			return nil, fmt.Errorf("replay %s: move %d: %s to play, record has %s", info.FileName, i+1, g.ToMove(), m.color)
		}
		if err := g.Play(m.move); err != nil {
			return nil, fmt.Errorf("replay %s: move %d (%s %v): %w", info.FileName, i+1, m.color, m.move, err)
		}
	}

	if !g.Status().Over() && strings.HasSuffix(info.Result, "+R") {
		loser := types.White
		if strings.HasPrefix(info.Result, "W") {
			loser = types.Black
		}
		if err := g.Resign(loser); err != nil {
			return nil, fmt.Errorf("replay %s: %w", info.FileName, err)
		}
	}
	return g, nil
}

// ReplayToEnd replays an SGF file and returns the final position and the number
// of moves, passes included.
func ReplayToEnd(filePath string) (*types.BoardState, int, error) {
	g, err := Replay(filePath)
	if err != nil {
		return nil, 0, err
	}
	return g.BoardSnapshot(), g.MoveNumber(), nil
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)

	// Find the root node: starts after "(;"
	start := strings.Index(content, "(;")
	if start == -1 {
		return props
	}
	start += 2 // skip "(;"

	// Root node ends at the next ";" or ")" outside a value
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == ';' || content[i] == ')' {
			end = i
			break
		}
	}

	root := content[start:end]
	extractProps(root, props)
	return props
}

// skipValue returns the index of the ']' closing the value that opens at i.
func skipValue(s string, i int) int {
	i++
	for i < len(s) && s[i] != ']' {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		i++
	}
	return i
}

// extractProps parses KEY[value] pairs from a node string into the map.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		// Skip whitespace
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		// Read property identifier (uppercase letters)
		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		// Read all property values (e.g., AB[aa][bb][cc])
		for i < len(node) && node[i] == '[' {
			end := skipValue(node, i)
			props[key] = unescape(node[i+1 : end]) // last value wins for simple props
			i = end + 1
		}
	}
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// countMoves counts the number of move nodes (;B[...] or ;W[...]) in the SGF.
func countMoves(content string) int {
	count := 0
	for i := 0; i+2 < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == ';' {
			next := content[i+1]
			if (next == 'B' || next == 'W') && content[i+2] == '[' {
				count++
			}
		}
	}
	return count
}

// hasSetup reports whether any node carries AB or AW.
func hasSetup(content string) bool {
	for i := 0; i+2 < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == 'A' && (content[i+1] == 'B' || content[i+1] == 'W') && content[i+2] == '[' {
			return true
		}
	}
	return false
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	// Find first ";" after "(;"
	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}
	start += 2

	// Skip root node to find subsequent ";"
	i := start
	for i < len(content) {
		if content[i] == ';' {
			break
		}
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}

	// Now parse subsequent nodes
	for i < len(content) {
		if content[i] == ';' {
			nodeStart := i
			i++
			// Read until next ';' or ')'
			for i < len(content) && content[i] != ';' && content[i] != ')' {
				if content[i] == '[' {
					i = skipValue(content, i)
				}
				i++
			}
			nodes = append(nodes, content[nodeStart:i])
		} else {
			i++
		}
	}

	return nodes
}

// parseMoveNode extracts the color and move from a node like ";B[pd]".
// An empty value, or "tt" on boards up to 19x19, is a pass.
func parseMoveNode(node string, size int) (types.Color, rules.Move, bool) {
	node = strings.TrimSpace(node)
	if len(node) < 2 || node[0] != ';' {
		return types.Empty, nil, false
	}

	var color types.Color
	switch node[1] {
	case 'B':
		color = types.Black
	case 'W':
		color = types.White
	default:
		return types.Empty, nil, false
	}

	// Find the value in brackets
	bracketStart := strings.Index(node, "[")
	bracketEnd := strings.Index(node, "]")
	if bracketStart != 2 || bracketEnd == -1 || bracketEnd <= bracketStart {
		return types.Empty, nil, false
	}

	coord := node[bracketStart+1 : bracketEnd]
	if coord == "" || (coord == "tt" && size <= 19) {
		return color, rules.Pass{}, true
	}

	if len(coord) != 2 {
		return types.Empty, nil, false
	}

	x := int(coord[0] - 'a')
	y := int(coord[1] - 'a')
	return color, rules.PlayAt(x, y), true
}

// ListGames scans a directory for .sgf files and returns their parsed headers,
// sorted newest-first (by filename, which contains timestamps).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sgf") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := ParseHeader(path)
		if err != nil {
			continue
		}
		games = append(games, *info)
	}

	return games, nil
}
