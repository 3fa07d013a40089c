// Package engine defines the interface for game engines.
package engine

import (
	"goban/rules"
	"goban/types"
)

// GameEngine defines the interface for playing Go against an engine.
type GameEngine interface {
	// Connect initializes the game. If the engine moves first, its move is made
	// before Connect returns.
	Connect() error

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays a move at the given coordinates.
	// Returns an error if the move is illegal.
	PlayMove(x, y int) error

	// Pass passes the current turn.
	Pass() error

	// Resign concedes the game for the human player.
	Resign() error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() types.Color

	// OnMove registers a callback for when a move is played (by either player).
	// x, y are -1, -1 for a pass. boardState is passed directly to avoid lock contention.
	OnMove(func(x, y int, color types.Color, boardState *types.BoardState))

	// Undo takes back the last move (one ply). Call twice to undo a player+engine move pair.
	Undo() error

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(status rules.Status))

	// Moves returns the accepted moves so far.
	Moves() []rules.Turn

	// Score returns the final count, or nil unless the game ended by passing.
	Score() *rules.Score

	// Close releases the engine and finishes any game record.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize   int         // 1 to rules.MaxSize, usually 9, 13 or 19
	Komi        float64     // Typically 6.5 or 7.5
	Rule        rules.Rule  // scoring method
	KoRule      rules.KoRule
	PlayerColor types.Color // the human's color
	Seed        uint64      // opponent randomness
	RecordDir   string      // write an SGF record here when non-empty
	ResumeFrom  string      // SGF file to continue from
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize:   19,
		Komi:        6.5,
		Rule:        rules.Chinese,
		KoRule:      rules.SimpleKo,
		PlayerColor: types.Black, // Human plays black
	}
}

// NewGame starts a rules.Game as described by the configuration.
func (c GameConfig) NewGame() (*rules.Game, error) {
	return rules.New(c.BoardSize, c.Rule,
		rules.WithKomi(c.Komi),
		rules.WithKoRule(c.KoRule),
	)
}
