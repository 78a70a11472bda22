// Package igisoro implements the rules of Igisoro: sowing with relays,
// captures in the opponent's rows, turn order and the end of the game.
package igisoro

import (
	"fmt"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
)

// StepObserver receives every intermediate board state of a move, in order.
type StepObserver func(step entity.Step)

// Option - configures an Engine at construction.
type Option func(*Engine)

// WithStepObserver - registers an observer called synchronously while a move is sowing.
func WithStepObserver(observer StepObserver) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, observer)
	}
}

// Engine owns one game and is the only writer of its board.
// It is not safe for concurrent use; callers serialize access per game.
type Engine struct {
	game      *entity.Game
	busy      bool
	observers []StepObserver
}

// NewEngine - wraps an existing game, applying opts.
func NewEngine(game *entity.Game, opts ...Option) *Engine {
	engine := &Engine{game: game}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// New - starts a fresh game with the given ID.
func New(id string, opts ...Option) *Engine {
	return NewEngine(entity.NewGame(id), opts...)
}

// Game - returns the game the engine writes to.
func (that *Engine) Game() *entity.Game {
	return that.game
}

// IsBusy - reports whether a move is being sown right now.
func (that *Engine) IsBusy() bool {
	return that.busy
}

// IsPlayable - reports whether the current player may start a move from pit.
func (that *Engine) IsPlayable(pit entity.Pit) bool {
	if that.busy || that.game.IsFinished() || !pit.Valid() {
		return false
	}

	return that.game.Board.Seeds(pit) > 0 && entity.Owner(pit.Row) == that.game.CurrentPlayer
}

// CanMove - reports whether player has a seed anywhere in their rows.
func (that *Engine) CanMove(player entity.Player) bool {
	return that.game.Board.HasSeeds(player)
}

// TerritoryTotal - counts the seeds in player's rows.
func (that *Engine) TerritoryTotal(player entity.Player) int {
	return that.game.Board.TerritoryTotal(player)
}

// Winner - decides the result from the current board. Only meaningful once the game is over.
func (that *Engine) Winner() entity.Result {
	return Winner(&that.game.Board)
}

// Winner - a player who can still move beats one who cannot;
// otherwise the larger territory total wins, and equal totals tie.
func Winner(board *entity.Board) entity.Result {
	canMove1 := board.HasSeeds(entity.Player1)
	canMove2 := board.HasSeeds(entity.Player2)

	switch {
	case !canMove1 && canMove2:
		return entity.ResultPlayer2
	case !canMove2 && canMove1:
		return entity.ResultPlayer1
	}

	total1 := board.TerritoryTotal(entity.Player1)
	total2 := board.TerritoryTotal(entity.Player2)

	switch {
	case total1 > total2:
		return entity.ResultPlayer1
	case total2 > total1:
		return entity.ResultPlayer2
	default:
		return entity.ResultTie
	}
}

// AttemptMove - plays pit for whoever is to move.
// A rejected move returns one of the apperror sentinels and leaves the game untouched.
func (that *Engine) AttemptMove(pit entity.Pit) (*entity.MoveOutcome, error) {
	if err := that.checkCommon(pit); err != nil {
		return nil, err
	}

	if entity.Owner(pit.Row) != that.game.CurrentPlayer {
		return nil, apperror.ErrNotYourTurn
	}

	if that.game.Board.Seeds(pit) == 0 {
		return nil, apperror.ErrEmptyPit
	}

	return that.execute(pit), nil
}

// AttemptMoveAs - plays pit on behalf of player, rejecting moves out of turn.
func (that *Engine) AttemptMoveAs(player entity.Player, pit entity.Pit) (*entity.MoveOutcome, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, int(player))
	}

	if err := that.checkCommon(pit); err != nil {
		return nil, err
	}

	if player != that.game.CurrentPlayer {
		return nil, apperror.ErrNotYourTurn
	}

	if entity.Owner(pit.Row) != player {
		return nil, apperror.ErrWrongTerritory
	}

	if that.game.Board.Seeds(pit) == 0 {
		return nil, apperror.ErrEmptyPit
	}

	return that.execute(pit), nil
}

// Reset - restores the starting position.
func (that *Engine) Reset() error {
	if that.busy {
		return apperror.ErrEngineBusy
	}

	that.game.Reset()

	return nil
}

func (that *Engine) checkCommon(pit entity.Pit) error {
	if that.busy {
		return apperror.ErrEngineBusy
	}

	if err := that.game.ConfirmOngoingState(); err != nil {
		return err
	}

	if !pit.Valid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidPit, pit)
	}

	return nil
}

func (that *Engine) execute(origin entity.Pit) *entity.MoveOutcome {
	that.busy = true
	defer func() { that.busy = false }()

	game := that.game
	mover := game.CurrentPlayer
	seedsBefore := game.SeedsInPlay()

	var steps []entity.Step
	result := sow(&game.Board, mover, origin, func(step entity.Step) {
		steps = append(steps, step)
		for _, observer := range that.observers {
			observer(step)
		}
	})

	if result.capture != nil {
		game.Stats.AddCapture(mover, result.captured)
		game.LastCapture = result.capture
	}

	if seedsAfter := game.SeedsInPlay(); seedsAfter != seedsBefore {
		panic(fmt.Sprintf("seed count changed from %d to %d during move from %s", seedsBefore, seedsAfter, origin))
	}

	// the remaining seeds stay on the board; nothing is swept
	next := mover.Opponent()
	if game.Board.HasSeeds(next) {
		game.CurrentPlayer = next
	} else {
		game.Status = entity.StatusFinished
		game.Winner = Winner(&game.Board)
	}

	game.History = append(game.History, entity.MoveRecord{
		Player:     mover,
		Origin:     origin,
		Captured:   result.captured,
		BoardAfter: game.Board,
	})
	game.Stats.TotalMoves++

	return &entity.MoveOutcome{
		Number:        game.Stats.TotalMoves,
		Player:        mover,
		Origin:        origin,
		Board:         game.Board,
		Steps:         steps,
		Captured:      result.captured,
		Capture:       result.capture,
		CurrentPlayer: game.CurrentPlayer,
		GameOver:      game.IsFinished(),
		Winner:        game.Winner,
	}
}
