package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
	"github.com/rocketscienceinc/igisoro-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playedGame returns a game with a move, a capture marker and history, to check round trips.
func playedGame(id string) *entity.Game {
	game := entity.NewGame(id)
	game.Board[2][0] = 0
	game.Board[0][0] = 2
	game.CurrentPlayer = entity.Player2
	game.Stats.TotalMoves = 1
	game.Stats.AddCapture(entity.Player1, 3)
	game.LastCapture = &entity.Capture{Pit: entity.Pit{Row: 1, Col: 2}, Amount: 3}
	game.History = []entity.MoveRecord{{
		Player:     entity.Player1,
		Origin:     entity.Pit{Row: 2, Col: 0},
		Captured:   3,
		BoardAfter: game.Board,
	}}
	game.Stats.StartedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return game
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, time.Hour)

	// Given: a new game
	game := entity.NewGame("123")

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game in the middle of play
		game := playedGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip returns an equal copy", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := playedGame("m1")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: reading it back
		retrievedGame, err := gameRepo.GetByID(ctx, "m1")

		// Then: it is equal but not shared
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)

		retrievedGame.Board[1][0] = 0
		retrievedGame.History[0].Captured = 0
		again, err := gameRepo.GetByID(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, entity.InitialSeeds, again.Board[1][0])
		assert.Equal(t, 3, again.History[0].Captured)
	})

	t.Run("Writes after save do not leak into storage", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame("m2")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		game.CurrentPlayer = entity.Player2

		stored, err := gameRepo.GetByID(ctx, "m2")
		require.NoError(t, err)
		assert.Equal(t, entity.Player1, stored.CurrentPlayer)
	})

	t.Run("Missing games", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGameNotFound)
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "nope"), ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("m3")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "m3"))

		_, err := gameRepo.GetByID(ctx, "m3")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
