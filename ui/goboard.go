// Package ui specifies custom controls for tview to assist in playing Go in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/config"
	"goban/engine"
	"goban/rules"
	"goban/types"
)

// style indexes
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleBlackAlt
	styleWhiteAlt
	styleCursorFG
	styleLastPlayed
	styleCursorBG
	styleLine
	styleBlackArea
	styleWhiteArea
)

type GoBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	finished   bool
	status     rules.Status
	territory  [][]types.Color
	selX       int
	selY       int
	lastPass   types.Color // color of a pass that was just played, Empty otherwise
	problem    string      // last rejected action
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *GoBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *GoBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *GoBoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *GoBoardUI) SelectedTile() *types.Point {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.Point{X: g.selX, Y: g.selY}
}

func (g *GoBoardUI) MoveSelection(h, v int) {
	if g.finished {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		last := g.BoardState.LastMove()
		g.selX, g.selY = last.X, last.Y
		if last == types.NoPoint {
			g.selX = g.BoardState.Size() / 2
			g.selY = g.BoardState.Size() / 2
		}
		return
	}
	size := g.BoardState.Size()
	if g.selX+h < 0 || g.selX+h >= size {
		return
	}
	if g.selY+v < 0 || g.selY+v >= size {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *GoBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewGoBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *GoBoardUI {
	goBoard := &GoBoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(0),
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
	}
	goBoard.SetConfig(c)
	goBoard.Box.SetDrawFunc(goBoard.draw)
	return goBoard
}

func (g *GoBoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if g.BoardState == nil || g.BoardState.Size() == 0 {
		return x, y, 1, 1
	}
	theme := g.cfg.Theme
	size := g.BoardState.Size()
	last := g.BoardState.LastMove()
	// 2 characters per cell for square appearance
	boardW, boardH := size*2, size

	for boardY := 0; boardY < size; boardY++ {
		for boardX := 0; boardX < size; boardX++ {
			stone := g.BoardState.At(boardX, boardY)
			bg := styleBoard
			if theme.DrawStoneBackground {
				bg = int(stone)
			}
			if (boardX%2 + boardY%2) == 1 {
				bg += 3
			}

			var drawRune rune
			var fgColor tcell.Color
			switch stone {
			case types.Black, types.White:
				drawRune = theme.Symbols.BlackStone
				if stone == types.White {
					drawRune = theme.Symbols.WhiteStone
				}
				if theme.DrawStoneBackground {
					// Inverted stone color so the glyph stays visible.
					fgColor = g.styles[int(stone.Opponent())+3*((boardX%2+boardY%2)%2)]
				} else {
					fgColor = g.styles[stone]
				}
			default:
				if theme.UseGridLines {
					drawRune = getGridRune(boardX, boardY, size, size, isHoshiPoint(boardX, boardY, size))
				} else {
					drawRune = theme.Symbols.BoardSquare
				}
				fgColor = g.styles[styleLine]
				if owner := g.owner(boardX, boardY); owner != types.Empty {
					bg = styleBlackArea
					if owner == types.White {
						bg = styleWhiteArea
					}
				}
			}

			if boardX == g.selX && boardY == g.selY {
				if theme.DrawCursorBackground {
					bg = styleCursorBG
				} else if !theme.UseGridLines {
					drawRune = theme.Symbols.Cursor
				}
			} else if boardX == last.X && boardY == last.Y {
				if theme.DrawLastPlayedBackground {
					bg = styleLastPlayed
				} else if !theme.UseGridLines {
					drawRune = theme.Symbols.LastPlayed
				}
			}

			style := tcell.StyleDefault.Background(g.styles[bg]).Foreground(fgColor)
			if theme.UseGridLines && stone == types.Empty {
				hasStoneRight := g.BoardState.At(boardX+1, boardY) != types.Empty
				drawGridCell(screen, style, drawRune, boardX, boardY, x+4, y, size, hasStoneRight)
			} else {
				drawStoneCell(screen, style, drawRune, boardX, boardY, x+4, y)
			}
		}
	}
	drawCoordinates(screen, x, y, g)
	// Add offset for coordinate display
	return x, y, boardW + 4, boardH + 2
}

// owner reports who the empty point (x, y) counts for once the game is scored.
func (g *GoBoardUI) owner(x, y int) types.Color {
	if g.territory == nil || !g.cfg.Theme.ShowTerritory {
		return types.Empty
	}
	return g.territory[y][x]
}

// ConnectEngine connects the board to a game engine.
func (g *GoBoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.status = rules.Status{}
	g.territory = nil
	g.lastPass = types.Empty
	g.problem = ""
	g.eng = e
	g.ResetSelection()

	e.OnMove(func(x, y int, color types.Color, boardState *types.BoardState) {
		g.lastPass = types.Empty
		if x == -1 && y == -1 {
			g.lastPass = color
		}
		g.BoardState = boardState
		g.refreshHint()
		g.redraw()
	})

	e.OnGameEnd(func(status rules.Status) {
		g.finished = true
		g.status = status
		g.BoardState = e.GetBoardState()
		if status.Phase == rules.Ended {
			g.territory = rules.Territory(g.BoardState)
		}
		g.ResetSelection()
		g.refreshHint()
		g.redraw()
	})

	if err := e.Connect(); err != nil {
		return err
	}

	if g.infoPanel != nil {
		g.infoPanel.SetEngine(e)
	}
	g.BoardState = e.GetBoardState()
	g.refreshHint()
	return nil
}

// redraw schedules a screen update. It runs in its own goroutine because the
// engine callbacks fire from inside tview's event loop.
func (g *GoBoardUI) redraw() {
	if g.app == nil {
		return
	}
	go func() {
		g.app.QueueUpdateDraw(func() {})
	}()
}

// act runs an engine action on the human's turn and records why it was refused.
func (g *GoBoardUI) act(f func(engine.GameEngine) error) {
	if g.finished || g.eng == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	g.problem = ""
	if err := f(g.eng); err != nil {
		g.problem = describeRejection(err)
	}
	g.refreshHint()
}

// PlayMove plays a move at the given coordinates.
func (g *GoBoardUI) PlayMove(x, y int) {
	g.act(func(e engine.GameEngine) error { return e.PlayMove(x, y) })
}

// Pass passes the current turn.
func (g *GoBoardUI) Pass() {
	g.act(engine.GameEngine.Pass)
}

// Resign concedes the game.
func (g *GoBoardUI) Resign() {
	g.act(engine.GameEngine.Resign)
}

// Undo takes back the human's last move together with the reply to it.
func (g *GoBoardUI) Undo() {
	if g.finished || g.eng == nil || !g.eng.IsMyTurn() {
		return
	}
	g.problem = ""
	if len(g.eng.Moves()) < 2 {
		g.problem = "Nothing to undo"
		g.refreshHint()
		return
	}
	for i := 0; i < 2; i++ {
		if err := g.eng.Undo(); err != nil {
			g.problem = err.Error()
			break
		}
	}
	g.BoardState = g.eng.GetBoardState()
	g.lastPass = types.Empty
	g.ResetSelection()
	g.refreshHint()
}

func describeRejection(err error) string {
	switch {
	case errors.Is(err, rules.ErrOccupied):
		return "That point is occupied"
	case errors.Is(err, rules.ErrSuicide):
		return "Suicide is not allowed"
	case errors.Is(err, rules.ErrKoViolation):
		return "Ko: play elsewhere first"
	case errors.Is(err, rules.ErrOutOfBounds):
		return "Off the board"
	}
	return err.Error()
}

// Close disconnects the engine.
func (g *GoBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *GoBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		styleBoard:      tcell.PaletteColor(c.Theme.Colors.BoardColor),
		styleBlack:      tcell.PaletteColor(c.Theme.Colors.BlackColor),
		styleWhite:      tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		styleBoardAlt:   tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),
		styleBlackAlt:   tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),
		styleWhiteAlt:   tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),
		styleCursorFG:   tcell.PaletteColor(c.Theme.Colors.CursorColorFG),
		styleLastPlayed: tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
		styleCursorBG:   tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		styleLine:       tcell.PaletteColor(c.Theme.Colors.LineColor),
		styleBlackArea:  tcell.PaletteColor(c.Theme.Colors.BlackAreaColor),
		styleWhiteArea:  tcell.PaletteColor(c.Theme.Colors.WhiteAreaColor),
	}
	g.cfg = c
}

// SetGameInfo shows the game settings on the info panel.
func (g *GoBoardUI) SetGameInfo(cfg engine.GameConfig) {
	if g.infoPanel != nil {
		g.infoPanel.SetGameInfo(cfg)
	}
}

func (g *GoBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  %s (%s)\n", g.status.Describe(), g.status.Result())
		controlsLine = "\n  q · return to menu"
	} else {
		switch {
		case g.problem != "":
			statusLine = fmt.Sprintf("  ✕ %s\n\n", g.problem)
		case g.lastPass != types.Empty && g.eng != nil && g.lastPass != g.eng.GetPlayerColor():
			statusLine = "  ○ Opponent passed\n\n"
		}

		if g.eng != nil && g.eng.IsMyTurn() {
			stone := "●"
			if g.eng.GetPlayerColor() == types.White {
				stone = "○"
			}
			turnLine = fmt.Sprintf("  %s Your move (%s)\n", stone, g.eng.GetPlayerColor())
		} else {
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ play   p pass   u undo
         r resign   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *GoBoardUI) IsFinished() bool {
	return g.finished
}

// drawStoneCell draws a stone cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawGridCell draws a cell using box-drawing characters for grid lines
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, hasStoneRight bool) {
	// 2-char cell: [intersection][right-line]
	s.SetContent(l+x*2, t+y, r, nil, c)

	rightConn := '─'
	if x == boardWidth-1 || hasStoneRight {
		rightConn = ' '
	}
	s.SetContent(l+x*2+1, t+y, rightConn, nil, c)
}

// getGridRune returns the appropriate box-drawing character for a grid position
func getGridRune(x, y, width, height int, isHoshi bool) rune {
	if isHoshi {
		return '◦'
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// isHoshiPoint reports whether (x, y) is a star point. Boards of 7 and up get
// corner points on the third or fourth line, odd boards of 9 and up a center
// point, and boards of 15 and up side points as well.
func isHoshiPoint(x, y, boardSize int) bool {
	if boardSize < 7 {
		return false
	}
	edge := 3
	if boardSize < 12 {
		edge = 2
	}
	mid := boardSize / 2
	lines := []int{edge, boardSize - 1 - edge}
	if boardSize%2 == 1 && boardSize >= 9 {
		if boardSize >= 15 || (x == mid && y == mid) {
			lines = append(lines, mid)
		}
	}
	onLine := func(v int) bool {
		for _, l := range lines {
			if v == l {
				return true
			}
		}
		return false
	}
	if !onLine(x) || !onLine(y) {
		return false
	}
	return true
}

func drawCoordinates(s tcell.Screen, x, y int, ui *GoBoardUI) {
	hCoord := int('A')
	size := ui.BoardState.Size()
	last := ui.BoardState.LastMove()
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('Ａ')
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[styleLastPlayed])

	for ix := 0; ix < size; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if ix == last.X {
			_style = lpHighlight
		}
		letter := ix
		if letter >= 8 {
			letter++ // no I column
		}
		s.SetContent(x+4+(ix*2), y+size+1, rune(hCoord+letter), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y+size+1, ' ', nil, _style)
	}

	for iy := 0; iy < size; iy++ {
		iyInv := size - iy - 1 // Board coordinates starts top left, Go board starts bottom left
		_style := style
		if iyInv == ui.selY {
			_style = highlight
		} else if iyInv == last.Y {
			_style = lpHighlight
		}
		displayNum := iy + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x+1, y+size-iy-1, tensRune, nil, _style)
		s.SetContent(x+2, y+size-iy-1, rune('0'+(displayNum%10)), nil, _style)
	}
}
