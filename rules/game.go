// Package rules implements the rules of Go: group and liberty tracking, move
// validation, captures, ko and scoring under Chinese or Japanese rules.
//
// A Game is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves.
package rules

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"goban/types"
)

// Phase is the coarse state of a game.
type Phase int

const (
	InProgress Phase = iota
	Ended            // two consecutive passes, Score is set
	Resigned         // Winner is set
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in progress"
	case Ended:
		return "ended"
	case Resigned:
		return "resigned"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Status describes where a game stands. Score is only set in the Ended phase.
// Winner is Empty while in progress and on a tie.
type Status struct {
	Phase  Phase
	Score  *Score
	Winner types.Color
}

// Over reports whether the game has ended, by passes or resignation.
func (s Status) Over() bool {
	return s.Phase != InProgress
}

// Result returns the SGF RE value: "B+3.5", "W+R", "0" for a tie, or empty while
// the game is in progress.
func (s Status) Result() string {
	switch s.Phase {
	case Ended:
		return s.Score.Result()
	case Resigned:
		return resultPrefix(s.Winner) + "R"
	}
	return ""
}

func (s Status) String() string {
	switch s.Phase {
	case Ended:
		if s.Winner == types.Empty {
			return "Jigo"
		}
		return s.Score.Result()
	case Resigned:
		return s.Result()
	}
	return s.Phase.String()
}

// Describe returns a sentence suitable for a status line.
func (s Status) Describe() string {
	switch s.Phase {
	case Ended:
		if s.Winner == types.Empty {
			return "Jigo"
		}
		return fmt.Sprintf("%s wins by %s points", colorName(s.Winner), formatPoints(s.Score.Margin()))
	case Resigned:
		return fmt.Sprintf("%s wins by resignation", colorName(s.Winner))
	}
	return "Game in progress"
}

func resultPrefix(c types.Color) string {
	if c == types.White {
		return "W+"
	}
	return "B+"
}

func colorName(c types.Color) string {
	if c == types.White {
		return "White"
	}
	return "Black"
}

type settings struct {
	komi     float64
	starting types.Color
	ko       KoRule
}

// Option configures a Game at construction.
type Option func(*settings) error

// WithKomi sets the points added to White's total. The default is 0.
func WithKomi(komi float64) Option {
	return func(s *settings) error {
		if math.IsNaN(komi) || math.IsInf(komi, 0) {
			return fmt.Errorf("komi must be a finite number, got %v", komi)
		}
		s.komi = komi
		return nil
	}
}

// WithStartingColor sets the color that makes the first move. The default is Black.
func WithStartingColor(c types.Color) Option {
	return func(s *settings) error {
		if !c.IsStone() {
			return fmt.Errorf("%w: starting color %s", ErrInvalidColor, c)
		}
		s.starting = c
		return nil
	}
}

// WithKoRule selects the repetition rule. The default is SimpleKo.
func WithKoRule(k KoRule) Option {
	return func(s *settings) error {
		if k != SimpleKo && k != PositionalSuperko {
			return fmt.Errorf("%w: %s", ErrUnknownRule, k)
		}
		s.ko = k
		return nil
	}
}

// Game is one game of Go from the empty board to its end.
type Game struct {
	board     *Board
	rule      Rule
	komi      float64
	koRule    KoRule
	toMove    types.Color
	passes    int
	prisoners [3]int // indexed by types.Color
	ko        *koDetector
	status    Status
	moves     []Turn
	moveNum   int
	lastPlay  types.Point
}

// New starts a game on an empty size×size board.
func New(size int, rule Rule, opts ...Option) (*Game, error) {
	if rule != Chinese && rule != Japanese {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, rule)
	}
	s := settings{starting: types.Black, ko: SimpleKo}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}
	b, err := newBoard(size)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:    b,
		rule:     rule,
		komi:     s.komi,
		koRule:   s.ko,
		toMove:   s.starting,
		ko:       newKoDetector(s.ko, b),
		lastPlay: types.NoPoint,
	}, nil
}

// Size returns the board dimension.
func (g *Game) Size() int { return g.board.Size() }

// Rule returns the scoring rule.
func (g *Game) Rule() Rule { return g.rule }

// KoRule returns the repetition rule.
func (g *Game) KoRule() KoRule { return g.koRule }

// Komi returns the points added to White's total.
func (g *Game) Komi() float64 { return g.komi }

// ToMove returns the color whose turn it is. The value is kept after the game ends.
func (g *Game) ToMove() types.Color { return g.toMove }

// MoveNumber counts the stones played and passes made so far.
func (g *Game) MoveNumber() int { return g.moveNum }

// Prisoners returns the number of stones c has captured.
func (g *Game) Prisoners(c types.Color) int {
	if !c.IsStone() {
		return 0
	}
	return g.prisoners[c]
}

// Status returns the current phase, and the score or winner once it is over.
func (g *Game) Status() Status { return g.status }

// Moves returns a copy of the accepted moves in order.
func (g *Game) Moves() []Turn { return slices.Clone(g.moves) }

// Hash returns the Zobrist hash of the current position.
func (g *Game) Hash() uint64 { return g.board.Hash() }

// GroupAt returns the group containing p.
func (g *Game) GroupAt(p types.Point) (Group, bool) { return g.board.GroupAt(p) }

// Groups returns every group on the board.
func (g *Game) Groups() []Group { return g.board.Groups() }

// Verify checks the incrementally maintained groups against a recomputation.
func (g *Game) Verify() error { return g.board.Verify() }

// Play applies m for the side to move, or for the resigning color when m is a
// Resign. On error the game is left unchanged.
func (g *Game) Play(m Move) error {
	switch m := m.(type) {
	case Play:
		return g.play(m.Point)
	case Pass:
		return g.Pass()
	case Resign:
		return g.Resign(m.Color)
	case nil:
		return errors.New("nil move")
	}
	return fmt.Errorf("unsupported move %T", m)
}

// IsLegal reports nil when m would be accepted by Play, otherwise the error Play
// would return.
func (g *Game) IsLegal(m Move) error {
	switch m := m.(type) {
	case Play:
		_, err := g.check(m.Point)
		return err
	case Pass:
		if g.status.Over() {
			return ErrGameAlreadyEnded
		}
		return nil
	case Resign:
		if g.status.Over() {
			return ErrGameAlreadyEnded
		}
		if !m.Color.IsStone() {
			return fmt.Errorf("%w: %s cannot resign", ErrInvalidColor, m.Color)
		}
		return nil
	case nil:
		return errors.New("nil move")
	}
	return fmt.Errorf("unsupported move %T", m)
}

// check runs every validation for a stone of the side to move at p, in order:
// game over, bounds, occupation, suicide, ko.
func (g *Game) check(p types.Point) (effect, error) {
	if g.status.Over() {
		return effect{}, ErrGameAlreadyEnded
	}
	if !g.board.InBounds(p) {
		return effect{}, fmt.Errorf("%w: %v on a %dx%d board", ErrOutOfBounds, p, g.Size(), g.Size())
	}
	eff, err := g.board.analyze(g.board.l.index(p), g.toMove)
	if err != nil {
		return effect{}, err
	}
	if g.ko.forbids(g.board, eff) {
		return effect{}, fmt.Errorf("%w: at %v", ErrKoViolation, p)
	}
	return eff, nil
}

func (g *Game) play(p types.Point) error {
	eff, err := g.check(p)
	if err != nil {
		return err
	}
	captured, _ := g.board.playAndCapture(eff.point, eff.color)
	g.prisoners[eff.color] += captured
	g.passes = 0
	g.lastPlay = p
	g.advance(Play{Point: p})
	return nil
}

// Pass gives up the turn. The second consecutive pass ends the game and scores it.
func (g *Game) Pass() error {
	if g.status.Over() {
		return ErrGameAlreadyEnded
	}
	g.passes++
	g.lastPlay = types.NoPoint
	g.advance(Pass{})
	if g.passes >= 2 {
		score := count(g.board, g.rule, g.komi, g.prisoners[types.Black], g.prisoners[types.White])
		g.status = Status{Phase: Ended, Score: score, Winner: score.Winner}
	}
	return nil
}

// Resign ends the game in favor of c's opponent. Either color may resign,
// whoever is to move.
func (g *Game) Resign(c types.Color) error {
	if g.status.Over() {
		return ErrGameAlreadyEnded
	}
	if !c.IsStone() {
		return fmt.Errorf("%w: %s cannot resign", ErrInvalidColor, c)
	}
	g.moves = append(g.moves, Turn{Color: c, Move: Resign{Color: c}})
	g.status = Status{Phase: Resigned, Winner: c.Opponent()}
	return nil
}

func (g *Game) advance(m Move) {
	g.moves = append(g.moves, Turn{Color: g.toMove, Move: m})
	g.moveNum++
	g.ko.record(g.board)
	g.toMove = g.toMove.Opponent()
}

// LegalMoves yields, in row-major order, every point where the side to move may
// play. It yields nothing once the game is over. The sequence reads the game as
// it is when iterated, so it can be ranged over again after further moves.
func (g *Game) LegalMoves() iter.Seq[types.Point] {
	return func(yield func(types.Point) bool) {
		if g.status.Over() {
			return
		}
		for i := range g.board.cells {
			if g.board.cells[i] != types.Empty {
				continue
			}
			eff, err := g.board.analyze(i, g.toMove)
			if err != nil || g.ko.forbids(g.board, eff) {
				continue
			}
			if !yield(g.board.l.point(i)) {
				return
			}
		}
	}
}

// BoardSnapshot returns a read-only copy of the board and game counters.
func (g *Game) BoardSnapshot() *types.BoardState {
	pos := types.Position{
		Size:           g.Size(),
		Cells:          g.board.cells,
		MoveNumber:     g.moveNum,
		ToMove:         g.toMove,
		Finished:       g.status.Over(),
		Outcome:        g.status.Result(),
		LastMove:       g.lastPlay,
		BlackPrisoners: g.prisoners[types.Black],
		WhitePrisoners: g.prisoners[types.White],
	}
	if pos.Finished {
		pos.ToMove = types.Empty
	}
	return types.Freeze(pos)
}
