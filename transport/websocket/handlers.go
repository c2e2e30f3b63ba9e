package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/presenter"
)

var (
	errCellRequired = errors.New("cell is required")
	errMoveRequired = errors.New("move is required")
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *RequestPayload) (*entity.Game, error) {
	return that.gameUseCase.GetOrCreateGame(ctx, sessionID)
}

func (that *Server) handlePlay(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error) {
	if payload.Cell == nil {
		return nil, errCellRequired
	}

	return that.gameUseCase.Play(ctx, sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error) {
	if payload.Move == nil {
		return nil, errMoveRequired
	}

	return that.gameUseCase.JumpTo(ctx, sessionID, *payload.Move)
}

func (that *Server) handleRestart(ctx context.Context, sessionID string, _ *RequestPayload) (*entity.Game, error) {
	return that.gameUseCase.Restart(ctx, sessionID)
}

// response - rejected moves still carry the unchanged game so the client can redraw.
func (that *Server) response(action string, game *entity.Game, err error) ResponsePayload {
	var payload ResponsePayload

	if game != nil {
		payload.Game = presenter.NewGameView(game)
	}

	switch {
	case err == nil:
	case apperror.IsRejected(err), errors.Is(err, errCellRequired), errors.Is(err, errMoveRequired):
		payload.Error = err.Error()
	default:
		that.logger.Error("action failed", "action", action, "error", err)
		payload.Error = "internal server error"
	}

	return payload
}
