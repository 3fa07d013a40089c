package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"goban/engine"
	"goban/engine/gtp"
	"goban/engine/local"
	"goban/rules"
	"goban/types"
)

// runText plays one game over plain text: the board is printed after every
// turn and moves are read one per line in GTP notation ("D4", "pass",
// "resign"), plus "undo" and "quit".
func runText(gameCfg engine.GameConfig, logger *zap.Logger, in io.Reader, out io.Writer) error {
	eng := local.New(gameCfg, logger)
	defer eng.Close()

	eng.OnMove(func(x, y int, color types.Color, board *types.BoardState) {
		if color == eng.GetPlayerColor() {
			return
		}
		move := "pass"
		if x >= 0 {
			move = gtp.Vertex(types.Point{X: x, Y: y}, board.Size())
		}
		fmt.Fprintf(out, "%s plays %s\n", color, move)
	})
	done := false
	eng.OnGameEnd(func(st rules.Status) {
		done = true
	})

	if err := eng.Connect(); err != nil {
		return err
	}
	size := eng.GetBoardState().Size()

	scanner := bufio.NewScanner(in)
	for !done {
		printBoard(out, eng.GetBoardState())
		fmt.Fprintf(out, "%s> ", eng.GetPlayerColor())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "undo":
			if err := undoPair(eng); err != nil {
				fmt.Fprintf(out, "cannot undo: %v\n", err)
			}
			continue
		}

		m, err := gtp.ParseMove(line, size, eng.GetPlayerColor())
		if err == nil {
			switch m := m.(type) {
			case rules.Play:
				err = eng.PlayMove(m.Point.X, m.Point.Y)
			case rules.Pass:
				err = eng.Pass()
			case rules.Resign:
				err = eng.Resign()
			}
		}
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	}

	printBoard(out, eng.GetBoardState())
	st := eng.Status()
	fmt.Fprintf(out, "Game over: %s\n", st.Describe())
	if st.Score != nil {
		fmt.Fprintln(out, st.Score)
	}
	if path := eng.RecordPath(); path != "" {
		fmt.Fprintf(out, "Saved to %s\n", path)
	}
	return nil
}

var errNoUndo = errors.New("no move of yours to take back")

// undoPair takes back the human's last move and the reply to it.
func undoPair(eng *local.Engine) error {
	if len(eng.Moves()) < 2 {
		return errNoUndo
	}
	for i := 0; i < 2; i++ {
		if err := eng.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// printBoard draws the board with GTP coordinates around it.
func printBoard(out io.Writer, board *types.BoardState) {
	size := board.Size()
	var header strings.Builder
	header.WriteString("   ")
	for x := 0; x < size; x++ {
		v := gtp.Vertex(types.Point{X: x, Y: 0}, size)
		header.WriteString(" " + v[:1])
	}

	fmt.Fprintln(out, header.String())
	last := board.LastMove()
	for y, row := range strings.Split(strings.TrimSuffix(board.String(), "\n"), "\n") {
		fmt.Fprintf(out, "%2d ", size-y)
		for x, cell := range row {
			sep := " "
			if x == last.X && y == last.Y {
				sep = "("
			} else if x == last.X+1 && y == last.Y {
				sep = ")"
			}
			fmt.Fprintf(out, "%s%c", sep, cell)
		}
		if last.Y == y && last.X == size-1 {
			fmt.Fprint(out, ")")
		}
		fmt.Fprintf(out, " %d\n", size-y)
	}
	fmt.Fprintln(out, header.String())
	fmt.Fprintf(out, "Captures: black %d, white %d\n",
		board.Prisoners(types.Black), board.Prisoners(types.White))
}
