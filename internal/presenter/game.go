package presenter

import (
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// CellView is one square as the page draws it.
type CellView struct {
	Index     int         `json:"index"`
	Value     entity.Cell `json:"value"`
	Playable  bool        `json:"playable"`
	Highlight bool        `json:"highlight"`
}

// GameView is what every display layer reads after a state change.
type GameView struct {
	Board       entity.Board   `json:"board"`
	Cells       []CellView     `json:"cells"`
	History     []entity.Board `json:"history"`
	CurrentMove int            `json:"current_move"`
	NextPlayer  entity.Cell    `json:"next_player"`
	Winner      entity.Cell    `json:"winner"`
	WinLine     []int          `json:"win_line,omitempty"`
	Status      string         `json:"status"`
	StatusText  string         `json:"status_text"`
	Moves       []entity.Move  `json:"moves"`
}

func NewGameView(game *entity.Game) *GameView {
	board := game.CurrentBoard()
	winner := board.Winner()

	view := &GameView{
		Board:       board,
		History:     game.History,
		CurrentMove: game.CurrentMove,
		NextPlayer:  game.NextPlayer(),
		Winner:      winner,
		Status:      game.Status(),
		StatusText:  StatusText(game),
		Moves:       game.Moves(),
	}

	var highlighted [entity.BoardSize]bool
	if line, ok := board.Line(); ok {
		view.WinLine = line[:]
		for _, i := range line {
			highlighted[i] = true
		}
	}

	view.Cells = make([]CellView, 0, entity.BoardSize)
	for i, cell := range board {
		view.Cells = append(view.Cells, CellView{
			Index:     i,
			Value:     cell,
			Playable:  cell == entity.EmptyCell && winner == entity.EmptyCell,
			Highlight: highlighted[i],
		})
	}

	return view
}

// StatusText is the line shown above the board.
func StatusText(game *entity.Game) string {
	switch game.Status() {
	case entity.StatusWon:
		return "Winner: " + string(game.Winner())
	case entity.StatusDraw:
		return "Draw"
	default:
		return "Next player: " + string(game.NextPlayer())
	}
}
