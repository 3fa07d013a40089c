// Package local implements an in-process GameEngine: the human plays against a
// random opponent that only chooses among legal moves.
package local

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"goban/engine"
	"goban/engine/gtp"
	"goban/rules"
	"goban/sgf"
	"goban/types"
)

var (
	errNotYourTurn   = errors.New("not your turn")
	errGameOver      = errors.New("game is over")
	errNothingToUndo = errors.New("no moves to undo")
)

// Engine plays against the human with a rules.Game as the single source of truth.
// Opponent moves are made synchronously inside the call that hands it the turn.
type Engine struct {
	config      engine.GameConfig
	game        *rules.Game
	rng         *rand.Rand
	log         *zap.Logger
	record      *sgf.GameRecord
	playerColor types.Color

	moveCallback func(x, y int, color types.Color, boardState *types.BoardState)
	endCallback  func(status rules.Status)

	mu sync.Mutex
}

// New creates an engine for cfg. A nil logger discards all output.
func New(cfg engine.GameConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		config:      cfg,
		rng:         rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
		log:         logger.Named("local"),
		playerColor: cfg.PlayerColor,
	}
}

// notice is a callback to run once the lock is released.
type notice func()

// Connect creates the game, resuming from an SGF file when configured, opens the
// game record and lets the opponent move if it is its turn.
func (e *Engine) Connect() error {
	e.mu.Lock()

	if !e.playerColor.IsStone() {
		e.mu.Unlock()
		return fmt.Errorf("%w: player color %s", rules.ErrInvalidColor, e.playerColor)
	}

	var err error
	if e.config.ResumeFrom != "" {
		e.game, err = sgf.Replay(e.config.ResumeFrom, rules.WithKoRule(e.config.KoRule))
		if err == nil {
			e.config.BoardSize = e.game.Size()
			e.config.Komi = e.game.Komi()
			e.config.Rule = e.game.Rule()
		}
	} else {
		e.game, err = e.config.NewGame()
	}
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to start game: %w", err)
	}

	if e.config.RecordDir != "" {
		if err := e.openRecord(); err != nil {
			e.mu.Unlock()
			return err
		}
	}

	e.log.Info("game started",
		zap.Int("size", e.config.BoardSize),
		zap.Float64("komi", e.config.Komi),
		zap.Stringer("rule", e.config.Rule),
		zap.Stringer("ko", e.config.KoRule),
		zap.Stringer("player", e.playerColor),
		zap.Uint64("seed", e.config.Seed),
		zap.Int("resumed_moves", e.game.MoveNumber()),
	)

	var notices []notice
	if e.game.Status().Over() {
		notices = append(notices, e.finish())
	} else if e.game.ToMove() != e.playerColor {
		notices = e.opponentMove(false)
	}
	e.mu.Unlock()

	run(notices)
	return nil
}

func (e *Engine) openRecord() error {
	setup := sgf.GameSetup{
		BoardSize:   e.config.BoardSize,
		Komi:        e.config.Komi,
		Rule:        e.config.Rule,
		PlayerBlack: "Player",
		PlayerWhite: "Random",
	}
	if e.playerColor == types.White {
		setup.PlayerBlack, setup.PlayerWhite = setup.PlayerWhite, setup.PlayerBlack
	}
	rec, err := sgf.NewGameRecord(e.config.RecordDir, setup)
	if err != nil {
		return fmt.Errorf("failed to open game record: %w", err)
	}
	for _, t := range e.game.Moves() {
		if err := rec.AddMove(t.Move, t.Color); err != nil {
			rec.Close()
			return fmt.Errorf("failed to copy resumed moves: %w", err)
		}
	}
	e.record = rec
	e.log.Debug("recording game", zap.String("path", rec.FilePath), zap.String("id", rec.ID))
	return nil
}

// GetBoardState returns the current board state.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return types.NewBoardState(e.config.BoardSize)
	}
	return e.game.BoardSnapshot()
}

// PlayMove plays the human's stone at (x, y) and then the opponent's reply.
func (e *Engine) PlayMove(x, y int) error {
	return e.humanMove(rules.PlayAt(x, y))
}

// Pass passes the human's turn.
func (e *Engine) Pass() error {
	return e.humanMove(rules.Pass{})
}

// Resign concedes the game for the human.
func (e *Engine) Resign() error {
	e.mu.Lock()
	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.game.Resign(e.playerColor); err != nil {
		e.mu.Unlock()
		return err
	}
	e.recordMove(rules.Resign{Color: e.playerColor}, e.playerColor)
	e.log.Info("player resigned", zap.Stringer("color", e.playerColor))
	end := e.finish()
	e.mu.Unlock()

	end()
	return nil
}

func (e *Engine) ready() error {
	if e.game == nil {
		return errors.New("engine is not connected")
	}
	if e.game.Status().Over() {
		return errGameOver
	}
	return nil
}

func (e *Engine) humanMove(m rules.Move) error {
	e.mu.Lock()

	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.game.ToMove() != e.playerColor {
		e.mu.Unlock()
		return errNotYourTurn
	}

	if err := e.game.Play(m); err != nil {
		e.log.Debug("move rejected", zap.Stringer("move", m), zap.Error(err))
		e.mu.Unlock()
		return fmt.Errorf("illegal move: %w", err)
	}
	notices := []notice{e.moved(m, e.playerColor)}

	_, passed := m.(rules.Pass)
	if e.game.Status().Over() {
		notices = append(notices, e.finish())
	} else {
		notices = append(notices, e.opponentMove(passed)...)
	}
	e.mu.Unlock()

	// Notify callbacks (outside lock to prevent deadlock)
	run(notices)
	return nil
}

// opponentMove picks and plays the opponent's move. Must be called while holding the lock.
func (e *Engine) opponentMove(humanPassed bool) []notice {
	color := e.game.ToMove()
	var m rules.Move = rules.Pass{}
	if !humanPassed {
		if p, ok := e.choose(color); ok {
			m = rules.Play{Point: p}
		}
	}

	if err := e.game.Play(m); err != nil {
		// only listed legal moves and passes are tried
		e.log.Error("opponent move rejected", zap.Stringer("move", m), zap.Error(err))
		return nil
	}
	e.log.Debug("opponent moved", zap.Stringer("move", m), zap.String("vertex", gtp.MoveString(m, e.game.Size())))

	notices := []notice{e.moved(m, color)}
	if e.game.Status().Over() {
		notices = append(notices, e.finish())
	}
	return notices
}

// choose picks uniformly among the legal moves that do not fill one of color's
// own eyes.
func (e *Engine) choose(color types.Color) (types.Point, bool) {
	board := e.game.BoardSnapshot()
	var candidates []types.Point
	for p := range e.game.LegalMoves() {
		if !isOwnEye(board, p, color) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return types.NoPoint, false
	}
	return candidates[e.rng.IntN(len(candidates))], true
}

// isOwnEye reports whether every orthogonal neighbor of p is a stone of color.
func isOwnEye(b *types.BoardState, p types.Point, color types.Color) bool {
	for _, d := range [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
		x, y := p.X+d[0], p.Y+d[1]
		if x < 0 || y < 0 || x >= b.Size() || y >= b.Size() {
			continue
		}
		if b.At(x, y) != color {
			return false
		}
	}
	return true
}

// moved records an accepted move and returns its callback.
// Must be called while holding the lock.
func (e *Engine) moved(m rules.Move, color types.Color) notice {
	e.recordMove(m, color)
	x, y := -1, -1
	if p, ok := m.(rules.Play); ok {
		x, y = p.Point.X, p.Point.Y
	}
	board := e.game.BoardSnapshot()
	cb := e.moveCallback
	return func() {
		if cb != nil {
			cb(x, y, color, board)
		}
	}
}

// finish closes out an ended game and returns the end callback.
// Must be called while holding the lock.
func (e *Engine) finish() notice {
	st := e.game.Status()
	fields := []zap.Field{zap.String("result", st.Result()), zap.Int("moves", e.game.MoveNumber())}
	if st.Score != nil {
		fields = append(fields,
			zap.Float64("black", st.Score.Black.Total),
			zap.Float64("white", st.Score.White.Total),
			zap.Int("dame", st.Score.Dame),
		)
	}
	e.log.Info("game over", fields...)

	if e.record != nil {
		if err := e.record.SetResult(st); err != nil {
			e.log.Warn("failed to write result", zap.Error(err))
		}
	}
	cb := e.endCallback
	return func() {
		if cb != nil {
			cb(st)
		}
	}
}

func (e *Engine) recordMove(m rules.Move, color types.Color) {
	if e.record == nil {
		return
	}
	if err := e.record.AddMove(m, color); err != nil {
		e.log.Warn("failed to record move", zap.Stringer("move", m), zap.Error(err))
	}
}

func run(notices []notice) {
	for _, n := range notices {
		if n != nil {
			n()
		}
	}
}

// Undo takes back the last move by rebuilding the game from the move log.
// Undoing the opponent's reply hands the turn back to it, so callers undo
// twice to get back to their own turn.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ready(); err != nil {
		return err
	}
	moves := e.game.Moves()
	if len(moves) == 0 {
		return errNothingToUndo
	}

	g, err := e.rebuild(moves[:len(moves)-1])
	if err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}
	e.game = g
	if e.record != nil {
		if err := e.record.UndoMoves(1); err != nil {
			e.log.Warn("failed to undo in record", zap.Error(err))
		}
	}
	e.log.Debug("undo", zap.Stringer("move", moves[len(moves)-1].Move), zap.Int("moves", g.MoveNumber()))
	return nil
}

func (e *Engine) rebuild(moves []rules.Turn) (*rules.Game, error) {
	start := types.Black
	if len(moves) > 0 {
		start = moves[0].Color
	}
	g, err := rules.New(e.game.Size(), e.game.Rule(),
		rules.WithKomi(e.game.Komi()),
		rules.WithKoRule(e.game.KoRule()),
		rules.WithStartingColor(start),
	)
	if err != nil {
		return nil, err
	}
	for i, t := range moves {
		if err := g.Play(t.Move); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return g, nil
}

// IsMyTurn returns true if it's the human player's turn.
func (e *Engine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game != nil && !e.game.Status().Over() && e.game.ToMove() == e.playerColor
}

// GetPlayerColor returns the human player's color.
func (e *Engine) GetPlayerColor() types.Color {
	return e.playerColor
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(x, y int, color types.Color, boardState *types.BoardState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(status rules.Status)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// Moves returns the accepted moves so far.
func (e *Engine) Moves() []rules.Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil
	}
	return e.game.Moves()
}

// Score returns the final count once the game has ended by passing.
func (e *Engine) Score() *rules.Score {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil
	}
	return e.game.Status().Score
}

// Status returns the game status.
func (e *Engine) Status() rules.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return rules.Status{}
	}
	return e.game.Status()
}

// RecordPath returns the SGF file being written, or "" when not recording.
func (e *Engine) RecordPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record == nil {
		return ""
	}
	return e.record.FilePath
}

// Close finishes the game record.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record == nil {
		return
	}
	if err := e.record.Close(); err != nil {
		e.log.Warn("failed to close game record", zap.Error(err))
	}
	e.record = nil
}

var _ engine.GameEngine = (*Engine)(nil)
