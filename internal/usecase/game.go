package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
)

type GameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)

	Play(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.Game, error)
	Restart(ctx context.Context, sessionID string) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetByID(ctx context.Context, sessionID string) (*entity.Game, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "usecase"),
		gameRepo: gameRepo,
	}
}

func (that *gameUseCase) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game, err = that.createGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// Play returns the rejected game unchanged together with the error when the move is invalid.
func (that *gameUseCase) Play(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "session", sessionID, "cell", cell)

	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.Play(cell); err != nil {
		log.Debug("move rejected", "error", err)
		return game, err
	}

	if err = that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	log.Info("move played", "move", game.CurrentMove, "status", game.Status(), "winner", game.Winner())

	return game, nil
}

func (that *gameUseCase) JumpTo(ctx context.Context, sessionID string, move int) (*entity.Game, error) {
	log := that.logger.With("method", "JumpTo", "session", sessionID, "move", move)

	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.JumpTo(move); err != nil {
		log.Debug("jump rejected", "error", err)
		return game, err
	}

	if err = that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	log.Debug("jumped", "history", len(game.History))

	return game, nil
}

// Restart drops the session's game and starts a new one.
func (that *gameUseCase) Restart(ctx context.Context, sessionID string) (*entity.Game, error) {
	if err := that.gameRepo.DeleteByID(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	game, err := that.createGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) createGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game := entity.NewGame()

	if err := that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "session", sessionID)

	return game, nil
}

func (that *gameUseCase) updateGame(ctx context.Context, sessionID string, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
