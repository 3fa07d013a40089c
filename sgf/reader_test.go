package sgf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"goban/rules"
	"goban/types"
)

const testSGF = `(;GM[1]FF[4]CA[UTF-8]AP[goban:1.0]SZ[9]KM[6.5]RU[Japanese]PB[Player]PW[Random]DT[2026-01-15]GN[0b6f3c2e-8d1a-4d55-9a38-6c0d3b1f2e77]RE[B+3.5]
;B[ee];W[cc];B[gg];W[cg];B[gc])`

func writeTempSGF(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp sgf: %v", err)
	}
	return path
}

func TestParseHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "test.sgf", testSGF)

	info, err := ParseHeader(path)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if info.BoardSize != 9 {
		t.Errorf("BoardSize = %d, want 9", info.BoardSize)
	}
	if info.Komi != 6.5 {
		t.Errorf("Komi = %f, want 6.5", info.Komi)
	}
	if info.Rule != rules.Japanese {
		t.Errorf("Rule = %s, want japanese", info.Rule)
	}
	if info.PlayerBlack != "Player" {
		t.Errorf("PlayerBlack = %q, want %q", info.PlayerBlack, "Player")
	}
	if info.PlayerWhite != "Random" {
		t.Errorf("PlayerWhite = %q, want %q", info.PlayerWhite, "Random")
	}
	if info.Date != "2026-01-15" {
		t.Errorf("Date = %q, want %q", info.Date, "2026-01-15")
	}
	if info.ID != "0b6f3c2e-8d1a-4d55-9a38-6c0d3b1f2e77" {
		t.Errorf("ID = %q", info.ID)
	}
	if info.Result != "B+3.5" {
		t.Errorf("Result = %q, want %q", info.Result, "B+3.5")
	}
	if info.MoveCount != 5 {
		t.Errorf("MoveCount = %d, want 5", info.MoveCount)
	}
}

func TestParseHeaderDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "bare.sgf", `(;GM[1]FF[4]RU[AGA]RE[White wins by 2.5 points]C[a; comment)])`)

	info, err := ParseHeader(path)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if info.BoardSize != 19 {
		t.Errorf("BoardSize = %d, want 19", info.BoardSize)
	}
	if info.Rule != rules.Chinese {
		t.Errorf("Rule = %s, want chinese for an unknown rule set", info.Rule)
	}
	if info.Result != "W+2.5" {
		t.Errorf("Result = %q, want W+2.5", info.Result)
	}
	if info.MoveCount != 0 {
		t.Errorf("MoveCount = %d, want 0", info.MoveCount)
	}
}

func TestParseHeaderMissingFile(t *testing.T) {
	_, err := ParseHeader("/nonexistent/file.sgf")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseMoveNode(t *testing.T) {
	tests := []struct {
		node      string
		size      int
		wantColor types.Color
		wantMove  rules.Move
		wantOK    bool
	}{
		{";B[pd]", 19, types.Black, rules.PlayAt(15, 3), true},
		{";W[aa]", 9, types.White, rules.PlayAt(0, 0), true},
		{";W[]", 9, types.White, rules.Pass{}, true},
		{";B[tt]", 19, types.Black, rules.Pass{}, true},
		{";B[tt]", 21, types.Black, rules.PlayAt(19, 19), true},
		{";C[note]", 9, types.Empty, nil, false},
		{";B[abc]", 9, types.Empty, nil, false},
		{"B[aa]", 9, types.Empty, nil, false},
	}
	for _, tt := range tests {
		color, move, ok := parseMoveNode(tt.node, tt.size)
		if ok != tt.wantOK || color != tt.wantColor || move != tt.wantMove {
			t.Errorf("parseMoveNode(%q) = (%s, %v, %v), want (%s, %v, %v)", tt.node, color, move, ok, tt.wantColor, tt.wantMove, tt.wantOK)
		}
	}
}

func TestReplayToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSGF(t, dir, "test.sgf", testSGF)

	board, moveCount, err := ReplayToEnd(path)
	if err != nil {
		t.Fatalf("ReplayToEnd: %v", err)
	}

	if moveCount != 5 {
		t.Errorf("moveCount = %d, want 5", moveCount)
	}

	// Verify stones are placed correctly
	// B[ee] = (4,4), W[cc] = (2,2), B[gg] = (6,6), W[cg] = (2,6), B[gc] = (6,2)
	checks := []struct {
		x, y  int
		color types.Color
	}{
		{4, 4, types.Black}, // B[ee]
		{2, 2, types.White}, // W[cc]
		{6, 6, types.Black}, // B[gg]
		{2, 6, types.White}, // W[cg]
		{6, 2, types.Black}, // B[gc]
		{0, 0, types.Empty},
	}
	for _, c := range checks {
		if got := board.At(c.x, c.y); got != c.color {
			t.Errorf("At(%d, %d) = %s, want %s", c.x, c.y, got, c.color)
		}
	}
	if board.PlayerToMove() != types.White {
		t.Errorf("PlayerToMove() = %s, want white", board.PlayerToMove())
	}
}

func TestReplayWithCaptures(t *testing.T) {
	// W at (1,0), B at (0,0), (2,0), (1,1) -> white captured
	sgf := `(;GM[1]FF[4]SZ[9]KM[6.5]PB[B]PW[W]DT[2026-01-01]RE[?]
;B[aa];W[ba];B[ca];W[ee];B[bb])`

	dir := t.TempDir()
	path := writeTempSGF(t, dir, "capture.sgf", sgf)

	g, err := Replay(path)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	board := g.BoardSnapshot()

	// White at (1,0) should be captured (removed)
	if board.At(1, 0) != types.Empty {
		t.Errorf("At(1, 0) = %s, want empty (captured)", board.At(1, 0))
	}
	for _, p := range []types.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}} {
		if board.AtPoint(p) != types.Black {
			t.Errorf("At%v = %s, want black", p, board.AtPoint(p))
		}
	}
	// White's other stone should still be there
	if board.At(4, 4) != types.White {
		t.Errorf("At(4, 4) = %s, want white", board.At(4, 4))
	}
	if g.Prisoners(types.Black) != 1 {
		t.Errorf("black prisoners = %d, want 1", g.Prisoners(types.Black))
	}
}

func TestReplayGroupCapture(t *testing.T) {
	// white (0,0)+(1,0) loses its last liberty to B[bb]
	sgf := `(;GM[1]FF[4]SZ[9]KM[6.5]PB[B]PW[W]DT[2026-01-01]RE[?]
;B[ca];W[aa];B[ab];W[ba];B[bb];W[ee])`

	dir := t.TempDir()
	path := writeTempSGF(t, dir, "group.sgf", sgf)

	board, _, err := ReplayToEnd(path)
	if err != nil {
		t.Fatalf("ReplayToEnd: %v", err)
	}

	if board.At(0, 0) != types.Empty || board.At(1, 0) != types.Empty {
		t.Errorf("white group not captured:\n%s", board)
	}
	if board.Prisoners(types.Black) != 2 {
		t.Errorf("black prisoners = %d, want 2", board.Prisoners(types.Black))
	}
}

func TestReplayWithPasses(t *testing.T) {
	sgf := `(;GM[1]FF[4]SZ[9]KM[6.5]PB[B]PW[W]DT[2026-01-01]RE[B+5.0]
;B[ee];W[];B[];W[])`

	dir := t.TempDir()
	path := writeTempSGF(t, dir, "pass.sgf", sgf)

	g, err := Replay(path)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if g.MoveNumber() != 4 {
		t.Errorf("MoveNumber() = %d, want 4", g.MoveNumber())
	}
	if g.Status().Phase != rules.Ended {
		t.Errorf("Phase = %s, want ended", g.Status().Phase)
	}
	if g.BoardSnapshot().At(4, 4) != types.Black {
		t.Error("stone at (4,4) missing")
	}
}

func TestReplayResigned(t *testing.T) {
	sgf := `(;GM[1]FF[4]SZ[9]RE[W+R];B[ee];W[cc])`
	path := writeTempSGF(t, t.TempDir(), "resign.sgf", sgf)

	g, err := Replay(path)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	st := g.Status()
	if st.Phase != rules.Resigned || st.Winner != types.White {
		t.Errorf("Status = %s %s, want resigned white", st.Phase, st.Winner)
	}
}

func TestReplayStartingColor(t *testing.T) {
	sgf := `(;GM[1]FF[4]SZ[9];W[ee];B[cc])`
	path := writeTempSGF(t, t.TempDir(), "white.sgf", sgf)

	g, err := Replay(path, rules.WithKoRule(rules.PositionalSuperko))
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if g.ToMove() != types.White {
		t.Errorf("ToMove() = %s, want white", g.ToMove())
	}
	if g.KoRule() != rules.PositionalSuperko {
		t.Errorf("KoRule() = %s, want superko", g.KoRule())
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name    string
		sgf     string
		wantErr error
	}{
		{"occupied", `(;SZ[9];B[ee];W[ee])`, rules.ErrOccupied},
		{"off the board", `(;SZ[9];B[ke])`, rules.ErrOutOfBounds},
		{"suicide", `(;SZ[9];B[ba];W[ee];B[ab];W[aa])`, rules.ErrSuicide},
		{"setup stones", `(;SZ[9];AB[dd][ff]AW[ee];B[cc])`, ErrSetupStones},
		{"board too large", `(;SZ[52];B[aa])`, rules.ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempSGF(t, t.TempDir(), "bad.sgf", tt.sgf)
			_, err := Replay(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Replay error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplayWrongTurn(t *testing.T) {
	path := writeTempSGF(t, t.TempDir(), "turn.sgf", `(;SZ[9];B[ee];B[cc])`)
	if _, err := Replay(path); err == nil {
		t.Error("Replay accepted two black moves in a row")
	}
}

func TestListGames(t *testing.T) {
	dir := t.TempDir()

	// Create a few SGF files with timestamp-like names
	writeTempSGF(t, dir, "2026-01-10_100000_9x9.sgf", `(;GM[1]FF[4]SZ[9]KM[6.5]PB[P]PW[E]DT[2026-01-10]RE[?])`)
	writeTempSGF(t, dir, "2026-01-11_100000_19x19.sgf", `(;GM[1]FF[4]SZ[19]KM[6.5]PB[P]PW[E]DT[2026-01-11]RE[B+5.0])`)
	writeTempSGF(t, dir, "2026-01-12_100000_13x13.sgf", `(;GM[1]FF[4]SZ[13]KM[7.5]PB[P]PW[E]DT[2026-01-12]RE[W+R])`)

	// Also create a non-sgf file to ensure it's skipped
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an sgf"), 0644)

	games, err := ListGames(dir)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}

	if len(games) != 3 {
		t.Fatalf("len(games) = %d, want 3", len(games))
	}

	// Should be newest-first
	for i, want := range []string{"2026-01-12", "2026-01-11", "2026-01-10"} {
		if games[i].Date != want {
			t.Errorf("games[%d].Date = %q, want %s", i, games[i].Date, want)
		}
	}

	if games[0].BoardSize != 13 {
		t.Errorf("games[0].BoardSize = %d, want 13", games[0].BoardSize)
	}
}

func TestListGamesEmptyDir(t *testing.T) {
	dir := t.TempDir()
	games, err := ListGames(dir)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("len(games) = %d, want 0", len(games))
	}
}

func TestListGamesNonexistentDir(t *testing.T) {
	games, err := ListGames("/nonexistent/dir")
	if err != nil {
		t.Fatalf("ListGames should not error for nonexistent dir: %v", err)
	}
	if games != nil {
		t.Errorf("games should be nil for nonexistent dir")
	}
}

func TestWriterThenReader(t *testing.T) {
	dir := t.TempDir()

	// Write a game using the writer, driven by a real game
	g, err := rules.New(9, rules.Japanese, rules.WithKomi(6.5))
	if err != nil {
		t.Fatal(err)
	}
	setup := testSetup(9)
	setup.Rule = rules.Japanese
	rec, err := NewGameRecord(dir, setup)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	for _, m := range []rules.Move{rules.PlayAt(4, 4), rules.PlayAt(2, 2), rules.PlayAt(6, 6), rules.Pass{}, rules.Pass{}} {
		color := g.ToMove()
		if err := g.Play(m); err != nil {
			t.Fatalf("Play(%v): %v", m, err)
		}
		rec.AddMove(m, color)
	}
	rec.SetResult(g.Status())
	rec.Close()

	// Read it back with the reader
	info, err := ParseHeader(rec.FilePath)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if info.Result != g.Status().Result() {
		t.Errorf("Result = %q, want %q", info.Result, g.Status().Result())
	}
	if info.MoveCount != 5 {
		t.Errorf("MoveCount = %d, want 5", info.MoveCount)
	}

	replayed, err := Replay(rec.FilePath)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.Hash() != g.Hash() {
		t.Errorf("replayed position differs:\n%s\nwant\n%s", replayed.BoardSnapshot(), g.BoardSnapshot())
	}
	if replayed.Rule() != rules.Japanese || replayed.Komi() != 6.5 {
		t.Errorf("replayed rule/komi = %s/%v", replayed.Rule(), replayed.Komi())
	}
	if replayed.Status().String() != g.Status().String() {
		t.Errorf("replayed status %q, want %q", replayed.Status(), g.Status())
	}
}
