package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/sgf"
	"goban/types"
)

const historyHint = "  [dimgray]⏎[-] resume  [dimgray]d[-] delete  [dimgray]q[-] back"

// preview is a replayed record, or the error that stopped the replay.
type preview struct {
	board *types.BoardState
	err   error
}

// HistoryBrowserUI provides a screen for browsing saved SGF game history.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	dir      string
	games    []sgf.GameInfo
	boards   map[string]preview // by file path
	selected int
	onDone   func()
	onResume func(path string)
}

// NewHistoryBrowser creates a history browser over the records in dir.
// onResume is called with the path of an unfinished game picked with Enter.
func NewHistoryBrowser(dir string, onDone func(), onResume func(path string)) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:      dir,
		onDone:   onDone,
		onResume: onResume,
		boards:   make(map[string]preview),
	}

	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText(historyHint)

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 40, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.boards = make(map[string]preview)
	hb.hint.SetText(historyHint)
	hb.loadGames()
}

func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0

	games, err := sgf.ListGames(hb.dir)
	if err != nil || len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	hb.games = games
	for _, g := range games {
		result := g.Result
		if unfinished(g) {
			result = "..."
		}
		label := fmt.Sprintf("%s  %dx%d  %-8s %s", g.Date, g.BoardSize, g.BoardSize, g.Rule, result)
		hb.gameList.AddItem(label, "", 0, nil)
	}
}

func unfinished(g sgf.GameInfo) bool {
	return g.Result == "" || g.Result == "?"
}

func (hb *HistoryBrowserUI) current() (sgf.GameInfo, bool) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return sgf.GameInfo{}, false
	}
	return hb.games[hb.selected], true
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyEnter:
		hb.resumeSelected()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

func (hb *HistoryBrowserUI) resumeSelected() {
	game, ok := hb.current()
	if !ok {
		return
	}
	if !unfinished(game) {
		hb.hint.SetText("  [dimgray]That game is over (" + game.Result + ")[-]")
		return
	}
	if p := hb.load(game); p.err != nil {
		hb.hint.SetText(fmt.Sprintf("  [red]Cannot resume: %s[-]", tview.Escape(p.err.Error())))
		return
	}
	if hb.onResume != nil {
		hb.onResume(game.FilePath)
	}
}

func (hb *HistoryBrowserUI) deleteSelected() {
	game, ok := hb.current()
	if !ok {
		return
	}
	if err := os.Remove(game.FilePath); err != nil {
		hb.hint.SetText(fmt.Sprintf("  [red]%s[-]", tview.Escape(err.Error())))
		return
	}
	hb.Refresh()
}

// load replays a record once and caches the final position.
func (hb *HistoryBrowserUI) load(game sgf.GameInfo) preview {
	p, ok := hb.boards[game.FilePath]
	if !ok {
		p.board, _, p.err = sgf.ReplayToEnd(game.FilePath)
		hb.boards[game.FilePath] = p
	}
	return p
}

// drawPreview renders a mini board preview and game metadata.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	game, ok := hb.current()
	if !ok {
		return x, y, width, height
	}

	startX := x + 2
	startY := y + 1
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	p := hb.load(game)
	if p.err != nil {
		drawText(screen, startX, startY, "Unreadable record:", infoStyle)
		drawText(screen, startX, startY+1, p.err.Error(), dimStyle)
		return x, y, width, height
	}

	size := p.board.Size()
	if width < size*2+4 || height < size+7 {
		return x, y, width, height
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	lastStyle := tcell.StyleDefault.Foreground(MenuColors.Selected)

	last := p.board.LastMove()
	for by := 0; by < size; by++ {
		for bx := 0; bx < size; bx++ {
			ch := '·'
			style := emptyStyle
			switch p.board.At(bx, by) {
			case types.Black:
				ch = '●'
				style = blackStyle
			case types.White:
				ch = '○'
				style = whiteStyle
			}
			if bx == last.X && by == last.Y {
				style = lastStyle
			}
			screen.SetContent(startX+bx*2, startY+by, ch, nil, style)
		}
	}

	infoY := startY + size + 1
	col := drawText(screen, startX, infoY, fmt.Sprintf("%dx%d %s", game.BoardSize, game.BoardSize, game.Rule), infoStyle)
	drawText(screen, col+1, infoY, fmt.Sprintf("| komi %g | %d moves", game.Komi, game.MoveCount), dimStyle)

	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("B: %s  W: %s", game.PlayerBlack, game.PlayerWhite), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("Captures: B %d  W %d",
		p.board.Prisoners(types.Black), p.board.Prisoners(types.White)), dimStyle)

	infoY++
	result := game.Result
	if unfinished(game) {
		result = "Unfinished (⏎ to resume)"
	}
	resultStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(109))
	drawText(screen, startX, infoY, fmt.Sprintf("Result: %s", result), resultStyle)

	return x, y, width, height
}
