package entity

// Cell is the occupancy of one square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// WinLine is a triple of cell indexes that ends the game when uniformly occupied.
type WinLine [3]int

// WinLines are checked in order: rows, columns, then the two diagonals.
var WinLines = [8]WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major snapshot of the 9 cells.
type Board [BoardSize]Cell

func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player mark, EmptyCell for EmptyCell.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Winner returns the mark occupying a whole winning line, or EmptyCell when there is none.
// A full board without a line is not reported here.
func (that Board) Winner() Cell {
	if line, ok := that.Line(); ok {
		return that[line[0]]
	}

	return EmptyCell
}

// Line returns the first uniformly occupied winning line.
func (that Board) Line() (WinLine, bool) {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return line, true
		}
	}

	return WinLine{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Diff returns the indexes at which the two boards differ.
func (that Board) Diff(other Board) []int {
	var diff []int
	for i := range that {
		if that[i] != other[i] {
			diff = append(diff, i)
		}
	}

	return diff
}
