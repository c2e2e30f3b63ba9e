package apperror

import "errors"

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrOutOfRange    = errors.New("move is out of history range")
	ErrGameFinished  = errors.New("game is already finished")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrCorruptedGame = errors.New("corrupted game state")
)

// IsRejected reports whether err is a rejected game operation rather than a failure.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidMove) || errors.Is(err, ErrOutOfRange)
}
