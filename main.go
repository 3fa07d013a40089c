// goban is a terminal application to play Go offline against a local opponent.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"goban/config"
	"goban/engine"
	"goban/engine/gtp"
	"goban/engine/local"
	"goban/rules"
	"goban/sgf"
	"goban/types"
	"goban/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagBoardSize  = flag.Int("boardsize", 0, "Board size (1 to 25)")
	flagColor      = flag.String("color", "", "Player color (black or white)")
	flagKomi       = flag.Float64("komi", -1000, "Komi value")
	flagRule       = flag.String("rule", "", "Scoring rule (chinese or japanese)")
	flagKo         = flag.String("ko", "", "Ko rule (simple or superko)")
	flagSeed       = flag.Uint64("seed", 0, "Opponent seed (0 picks one)")
	flagResume     = flag.String("resume", "", "Continue the game in this SGF file")
	flagConfig     = flag.String("config", "", "Config file (default: XDG config dir)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagText       = flag.Bool("text", false, "Play in plain text on stdin/stdout")
	flagDebug      = flag.Bool("debug", false, "Write debug messages to the log")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GoBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var history *ui.HistoryBrowserUI
var cfg *config.Config
var logger *zap.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("goban %s\n", Version)
		return
	}

	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger = newLogger(*flagDebug)
	defer logger.Sync()

	gameCfg, err := buildGameConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *flagText {
		if err := runText(gameCfg, logger, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	quickStart := *flagQuickStart || *flagResume != "" || *flagBoardSize > 0 || *flagColor != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ goban ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewGoBoard(app, cfg, gameHint)
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)
	gameBoard.Box.SetInputCapture(handleGameKey)

	setupUI := ui.NewGameSetup(gameCfg,
		startGame,
		func() {
			history.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			app.Stop()
		},
	)
	setupUI.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return event
	})

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			colorConfig.Cancel()
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	history = ui.NewHistoryBrowser(cfg.HistoryPath(),
		func() {
			rootPage.SwitchToPage("setup")
		},
		func(path string) {
			resumed, err := resumeConfig(setupUI.Config(), path)
			if err != nil {
				showError("Failed to resume game", err)
				return
			}
			startGame(resumed)
		},
	)

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI, ui.SetupWidth, ui.SetupHeight), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("history", history.Flex(), true, false)

	if quickStart {
		startGame(gameCfg)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.Error("terminal UI failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
	}
	gameBoard.Close()
}

func handleGameKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
		if gameBoard.SelectedTile() != nil {
			gameBoard.ResetSelection()
		} else {
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
		}
		return nil
	}
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyDown:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyRight:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyEnter:
		if selTile := gameBoard.SelectedTile(); selTile != nil {
			gameBoard.PlayMove(selTile.X, selTile.Y)
		}
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveSelection(-1, 0)
		case 'j':
			gameBoard.MoveSelection(0, 1)
		case 'k':
			gameBoard.MoveSelection(0, -1)
		case 'l':
			gameBoard.MoveSelection(1, 0)
		case 'p':
			gameBoard.Pass()
		case 'u':
			gameBoard.Undo()
		case 'r':
			confirmResign()
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
	}
	return event
}

func confirmResign() {
	if gameBoard.IsFinished() {
		return
	}
	modal := tview.NewModal().
		SetText("Resign this game?").
		AddButtons([]string{"Resign", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("resign")
			if buttonLabel == "Resign" {
				gameBoard.Resign()
			}
		})
	rootPage.AddPage("resign", modal, true, true)
}

func showError(title string, err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s:\n%s", title, err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	if gameCfg.Seed == 0 {
		gameCfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Game.RecordGames && gameCfg.RecordDir == "" {
		gameCfg.RecordDir = cfg.HistoryPath()
	}

	gameBoard.SetGameInfo(gameCfg)
	eng := local.New(gameCfg, logger)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		logger.Warn("failed to start game", zap.Error(err))
		showError("Failed to start game", err)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// resumeConfig prepares base to continue the record at path: the board and
// scoring come from the file, and the human keeps the side named "Player".
func resumeConfig(base engine.GameConfig, path string) (engine.GameConfig, error) {
	info, err := sgf.ParseHeader(path)
	if err != nil {
		return base, err
	}
	base.ResumeFrom = path
	base.BoardSize = info.BoardSize
	base.Komi = info.Komi
	base.Rule = info.Rule
	base.PlayerColor = types.Black
	if info.PlayerWhite == "Player" {
		base.PlayerColor = types.White
	}
	return base, nil
}

// buildGameConfigFromFlags starts from the config file and applies flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg, err := cfg.EngineConfig()
	if err != nil {
		return gameCfg, err
	}

	if *flagBoardSize > 0 {
		if *flagBoardSize > rules.MaxSize {
			return gameCfg, fmt.Errorf("%w: %d", rules.ErrInvalidSize, *flagBoardSize)
		}
		gameCfg.BoardSize = *flagBoardSize
	}
	if *flagColor != "" {
		if gameCfg.PlayerColor, err = gtp.ParseColor(*flagColor); err != nil {
			return gameCfg, err
		}
	}
	if *flagRule != "" {
		if gameCfg.Rule, err = rules.ParseRule(*flagRule); err != nil {
			return gameCfg, err
		}
	}
	if *flagKo != "" {
		if gameCfg.KoRule, err = rules.ParseKoRule(*flagKo); err != nil {
			return gameCfg, err
		}
	}
	if *flagKomi > -1000 {
		gameCfg.Komi = *flagKomi
	}
	gameCfg.Seed = *flagSeed

	if *flagResume != "" {
		return resumeConfig(gameCfg, *flagResume)
	}
	return gameCfg, nil
}

// newLogger writes JSON logs to the XDG state directory. The terminal belongs to
// the UI, so nothing is logged to stderr.
func newLogger(debug bool) *zap.Logger {
	path, err := config.LogPath()
	if err != nil {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("version", Version))
}
