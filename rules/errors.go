package rules

import "errors"

var (
	// ErrOccupied error occurs when a stone is played on a point that is not empty
	ErrOccupied = errors.New("the point is occupied")
	// ErrOutOfBounds error occurs when a coordinate lies outside the board
	ErrOutOfBounds = errors.New("the point is outside the board")
	// ErrSuicide error occurs when a move would leave its own group without liberties
	ErrSuicide = errors.New("suicide is not allowed")
	// ErrKoViolation error occurs when a move would recreate a forbidden position
	ErrKoViolation = errors.New("the move violates the ko rule")
	// ErrGameAlreadyEnded error occurs when any move is attempted on a finished game
	ErrGameAlreadyEnded = errors.New("the game has already ended")
	// ErrInvalidSize error occurs when New is called with a wrong size
	ErrInvalidSize = errors.New("board size is out of range (from 1x1 to 25x25)")
	// ErrInvalidColor error occurs when an operation is made with the Empty colour
	ErrInvalidColor = errors.New("only black and white stones allowed")
	// ErrUnknownRule error occurs when a rule name cannot be parsed
	ErrUnknownRule = errors.New("unknown rule")
)
