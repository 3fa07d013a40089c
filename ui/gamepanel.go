package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"goban/engine"
	"goban/engine/gtp"
	"goban/rules"
	"goban/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	game       engine.GameConfig
	eng        engine.GameEngine
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:  tview.NewTextView(),
		game: engine.DefaultConfig(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetGameInfo sets the rules and komi shown in the header.
func (p *GameInfoPanel) SetGameInfo(cfg engine.GameConfig) {
	p.game = cfg
	p.refresh()
}

// SetEngine sets the engine the move list and final score are read from.
func (p *GameInfoPanel) SetEngine(e engine.GameEngine) {
	p.eng = e
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	if p.boardState == nil || p.boardState.Size() == 0 {
		p.box.SetText("")
		return
	}

	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Rules:[-:-:-] %s, %s ko\n", p.game.Rule, p.game.KoRule)
	fmt.Fprintf(&text, "[white]Komi:[-:-:-]  %.1f\n", p.game.Komi)
	fmt.Fprintf(&text, "[white]Move:[-:-:-]  %d\n", p.boardState.MoveNumber())
	fmt.Fprintf(&text, "[white]Captures:[-:-:-] B %d  W %d\n",
		p.boardState.Prisoners(types.Black), p.boardState.Prisoners(types.White))

	if p.eng == nil {
		p.box.SetText(text.String())
		return
	}

	if score := p.eng.Score(); score != nil {
		text.WriteString("\n[white::b]Score[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		writeTally(&text, "B", score.Rule, score.Black)
		writeTally(&text, "W", score.Rule, score.White)
		fmt.Fprintf(&text, "[dimgray]dame %d[-]\n", score.Dame)
		fmt.Fprintf(&text, "[yellow]%s[-]\n", score.Result())
	}

	moves := p.eng.Moves()
	if len(moves) > 0 {
		text.WriteString("\n[white::b]Moves[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		size := p.boardState.Size()
		for i := start; i < len(moves); i++ {
			m := moves[i]

			colorStr := "[white]B[-]"
			if m.Color == types.White {
				colorStr = "[dimgray]W[-]"
			}

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, gtp.MoveString(m.Move, size))
		}

		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text.String())
}

func writeTally(text *strings.Builder, who string, rule rules.Rule, t rules.Tally) {
	counted := t.Stones
	label := "stones"
	if rule == rules.Japanese {
		counted = t.Prisoners
		label = "caps"
	}
	fmt.Fprintf(text, "%s %g [dimgray](%d area, %d %s", who, t.Total, t.Territory, counted, label)
	if t.Komi != 0 {
		fmt.Fprintf(text, ", %g komi", t.Komi)
	}
	text.WriteString(")[-]\n")
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *GoBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm centers a form horizontally and vertically.
func CreateCenteredForm(form tview.Primitive, maxWidth, maxHeight int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)
	row.AddItem(form, maxWidth, 0, true)
	row.AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(row, maxHeight, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *GoBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	if board.infoPanel != nil {
		infoPanel.game = board.infoPanel.game
	}
	board.infoPanel = infoPanel
	infoPanel.eng = board.eng
	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 30, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *GoBoardUI) {
	gameFrame.Clear()

	boardWidth := 22 // 9x9
	boardHeight := 11
	if board.BoardState != nil && board.BoardState.Size() > 0 {
		boardWidth = board.BoardState.Size()*2 + 4 // 2 chars per cell + coordinates
		boardHeight = board.BoardState.Size() + 2
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
