package entity

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// Game is one session's game: every board snapshot played so far and the one being viewed.
type Game struct {
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

// Move describes one history entry for the move list.
type Move struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

func NewGame() *Game {
	return &Game{
		History:     []Board{{}},
		CurrentMove: 0,
	}
}

// Play puts the next player's mark on cell of the current board.
// Moves recorded after the current one are discarded first.
func (that *Game) Play(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()

	if board.Winner() != EmptyCell {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if board[cell] != EmptyCell {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, cell)
	}

	board[cell] = that.NextPlayer()

	history := make([]Board, that.CurrentMove+1, that.CurrentMove+2)
	copy(history, that.History[:that.CurrentMove+1])

	that.History = append(history, board)
	that.CurrentMove = len(that.History) - 1

	return nil
}

// JumpTo selects the history entry to view and play from.
func (that *Game) JumpTo(move int) error {
	if move < 0 || move >= len(that.History) {
		return fmt.Errorf("%w: move %d, history length %d", apperror.ErrOutOfRange, move, len(that.History))
	}

	that.CurrentMove = move

	return nil
}

func (that *Game) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

func (that *Game) NextPlayer() Cell {
	return moverAt(that.CurrentMove)
}

func (that *Game) Winner() Cell {
	return that.CurrentBoard().Winner()
}

// Status reports the outcome of the current board. A draw is a full board without a winner.
func (that *Game) Status() string {
	board := that.CurrentBoard()

	switch {
	case board.Winner() != EmptyCell:
		return StatusWon
	case board.IsFull():
		return StatusDraw
	default:
		return StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status() != StatusOngoing
}

// Moves lists every history entry in chronological order.
func (that *Game) Moves() []Move {
	moves := make([]Move, 0, len(that.History))
	for i := range that.History {
		description := "Go to game start"
		if i > 0 {
			description = "Go to move #" + strconv.Itoa(i)
		}

		moves = append(moves, Move{
			Number:      i,
			Description: description,
			Current:     i == that.CurrentMove,
		})
	}

	return moves
}

func (that *Game) Clone() *Game {
	history := make([]Board, len(that.History))
	copy(history, that.History)

	return &Game{
		History:     history,
		CurrentMove: that.CurrentMove,
	}
}

// Validate checks that the history could have been produced by Play.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptedGame)
	}

	if that.History[0] != (Board{}) {
		return fmt.Errorf("%w: first board is not empty", apperror.ErrCorruptedGame)
	}

	if that.CurrentMove < 0 || that.CurrentMove >= len(that.History) {
		return fmt.Errorf("%w: current move %d, history length %d", apperror.ErrCorruptedGame, that.CurrentMove, len(that.History))
	}

	for i := 1; i < len(that.History); i++ {
		prev, next := that.History[i-1], that.History[i]

		if prev.Winner() != EmptyCell {
			return fmt.Errorf("%w: move %d played after a win", apperror.ErrCorruptedGame, i)
		}

		diff := prev.Diff(next)
		if len(diff) != 1 {
			return fmt.Errorf("%w: move %d changes %d cells", apperror.ErrCorruptedGame, i, len(diff))
		}

		cell := diff[0]
		if prev[cell] != EmptyCell || next[cell] != moverAt(i-1) {
			return fmt.Errorf("%w: move %d puts %q on cell %d", apperror.ErrCorruptedGame, i, next[cell], cell)
		}
	}

	return nil
}

// moverAt returns who plays from history entry move: X on even entries.
func moverAt(move int) Cell {
	if move%2 == 0 {
		return PlayerX
	}

	return PlayerO
}
