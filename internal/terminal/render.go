package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/presenter"
)

const (
	colorX = "1" // red
	colorO = "4" // blue

	rowSeparator = "---+---+---"
)

// Renderer draws a game as text. Colours depend on the profile of the output.
type Renderer struct {
	output *termenv.Output
}

func NewRenderer(output *termenv.Output) *Renderer {
	return &Renderer{output: output}
}

// Board renders the current board. Empty cells show their index, the winning line is bold.
func (that *Renderer) Board(game *entity.Game) string {
	board := game.CurrentBoard()
	line, won := board.Line()

	var sb strings.Builder
	for row := range 3 {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 3)
		for col := range 3 {
			index := row*3 + col
			cells[col] = " " + that.cell(board[index], index, won && onLine(line, index)) + " "
		}

		sb.WriteString(strings.Join(cells, "|") + "\n")
	}

	return sb.String()
}

func (that *Renderer) cell(value entity.Cell, index int, highlight bool) string {
	if value == entity.EmptyCell {
		return that.output.String(strconv.Itoa(index)).Faint().String()
	}

	style := that.output.String(string(value))
	switch value {
	case entity.PlayerX:
		style = style.Foreground(that.output.Color(colorX))
	case entity.PlayerO:
		style = style.Foreground(that.output.Color(colorO))
	}

	if highlight {
		style = style.Bold()
	}

	return style.String()
}

// Status renders the status line, e.g. "Next player: O".
func (that *Renderer) Status(game *entity.Game) string {
	return presenter.StatusText(game) + "\n"
}

// History renders the move list with the current move marked.
func (that *Renderer) History(game *entity.Game) string {
	var sb strings.Builder
	for _, move := range game.Moves() {
		marker := " "
		if move.Current {
			marker = "*"
		}

		fmt.Fprintf(&sb, "%s %d. %s\n", marker, move.Number, move.Description)
	}

	return sb.String()
}

func onLine(line entity.WinLine, index int) bool {
	for _, cell := range line {
		if cell == index {
			return true
		}
	}

	return false
}
