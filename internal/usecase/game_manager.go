package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
	"github.com/rocketscienceinc/igisoro-backend/internal/igisoro"
	"github.com/rocketscienceinc/igisoro-backend/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - loads games, runs them through the engine and stores the result.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	locks    *gameLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		locks:    newGameLocks(),
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetScoreboard(ctx context.Context, id string) (*entity.Scoreboard, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return Scoreboard(game), nil
}

// Scoreboard - summarizes territory totals, mobility and captures of a game.
func Scoreboard(game *entity.Game) *entity.Scoreboard {
	engine := igisoro.NewEngine(game)

	return &entity.Scoreboard{
		CurrentPlayer:   game.CurrentPlayer,
		GameOver:        game.IsFinished(),
		Winner:          game.Winner,
		Player1Seeds:    engine.TerritoryTotal(entity.Player1),
		Player2Seeds:    engine.TerritoryTotal(entity.Player2),
		Player1CanMove:  engine.CanMove(entity.Player1),
		Player2CanMove:  engine.CanMove(entity.Player2),
		Player1Captures: game.Stats.Captures(entity.Player1),
		Player2Captures: game.Stats.Captures(entity.Player2),
		TotalMoves:      game.Stats.TotalMoves,
	}
}

func (that *GameManager) IsPlayable(ctx context.Context, id string, pit entity.Pit) (bool, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return false, err
	}

	return igisoro.NewEngine(game).IsPlayable(pit), nil
}

// MakeMove - plays pit in game id. With entity.NoPlayer the move is made for whoever is to move.
// Concurrent moves on the same game are rejected with apperror.ErrEngineBusy.
func (that *GameManager) MakeMove(ctx context.Context, id string, player entity.Player, pit entity.Pit) (*entity.MoveOutcome, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	unlock, ok := that.locks.tryLock(id)
	if !ok {
		return nil, apperror.ErrEngineBusy
	}
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	engine := igisoro.NewEngine(game, igisoro.WithStepObserver(func(step entity.Step) {
		log.Debug("step", "action", step.Action, "pit", step.Pit.String(), "inHand", step.InHand)
	}))

	var outcome *entity.MoveOutcome
	if player == entity.NoPlayer {
		outcome, err = engine.AttemptMove(pit)
	} else {
		outcome, err = engine.AttemptMoveAs(player, pit)
	}

	if err != nil {
		log.Info("move rejected", "pit", pit.String(), "reason", apperror.Reason(err))
		return nil, fmt.Errorf("failed make move: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("move played",
		"player", int(outcome.Player),
		"pit", pit.String(),
		"captured", outcome.Captured,
		"steps", len(outcome.Steps),
		"gameOver", outcome.GameOver,
	)

	if outcome.GameOver {
		log.Info("game finished", "winner", outcome.Winner, "moves", game.Stats.TotalMoves)
	}

	return outcome, nil
}

func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	unlock, ok := that.locks.tryLock(id)
	if !ok {
		return nil, apperror.ErrEngineBusy
	}
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = igisoro.NewEngine(game).Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset", "gameID", id)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock, ok := that.locks.tryLock(id)
	if !ok {
		return apperror.ErrEngineBusy
	}
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
