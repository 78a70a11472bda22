package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwner(t *testing.T) {
	t.Run("Rows 0 and 1 belong to Player2, rows 2 and 3 to Player1", func(t *testing.T) {
		for col := 0; col < Cols; col++ {
			assert.Equal(t, Player2, Owner(0), "row 0 col %d", col)
			assert.Equal(t, Player2, Owner(1), "row 1 col %d", col)
			assert.Equal(t, Player1, Owner(2), "row 2 col %d", col)
			assert.Equal(t, Player1, Owner(3), "row 3 col %d", col)
		}
	})

	t.Run("Owner agrees with Player.Rows", func(t *testing.T) {
		for _, player := range []Player{Player1, Player2} {
			for _, row := range player.Rows() {
				assert.Equal(t, player, Owner(row))
			}
		}
	})
}

func TestAdjacentPit(t *testing.T) {
	t.Run("Wraps between rows", func(t *testing.T) {
		// Given: the four row ends of the ring
		cases := map[Pit]Pit{
			{Row: 0, Col: 7}: {Row: 1, Col: 7},
			{Row: 1, Col: 0}: {Row: 2, Col: 0},
			{Row: 2, Col: 7}: {Row: 3, Col: 7},
			{Row: 3, Col: 0}: {Row: 0, Col: 0},
		}

		// Then: each one continues on the next row
		for from, want := range cases {
			assert.Equal(t, want, AdjacentPit(from), "from %s", from)
		}
	})

	t.Run("Moves along the row direction", func(t *testing.T) {
		assert.Equal(t, Pit{Row: 0, Col: 4}, AdjacentPit(Pit{Row: 0, Col: 3}))
		assert.Equal(t, Pit{Row: 1, Col: 2}, AdjacentPit(Pit{Row: 1, Col: 3}))
		assert.Equal(t, Pit{Row: 2, Col: 4}, AdjacentPit(Pit{Row: 2, Col: 3}))
		assert.Equal(t, Pit{Row: 3, Col: 2}, AdjacentPit(Pit{Row: 3, Col: 3}))
	})

	t.Run("Visits every pit once per lap", func(t *testing.T) {
		// Given: a walk starting at (0,0)
		start := Pit{Row: 0, Col: 0}
		seen := make(map[Pit]bool)

		// When: walking one full lap
		pit := start
		for i := 0; i < Rows*Cols; i++ {
			require.True(t, pit.Valid())
			require.False(t, seen[pit], "pit %s visited twice", pit)
			seen[pit] = true
			pit = AdjacentPit(pit)
		}

		// Then: all pits were visited and the walk is back at the start
		assert.Len(t, seen, Rows*Cols)
		assert.Equal(t, start, pit)
	})

	t.Run("Panics on an out of range row", func(t *testing.T) {
		assert.Panics(t, func() { AdjacentPit(Pit{Row: 4, Col: 0}) })
	})
}

func TestNewBoard(t *testing.T) {
	// When: creating the starting board
	board := NewBoard()

	// Then: inner rows hold four seeds and outer rows are empty
	for col := 0; col < Cols; col++ {
		assert.Equal(t, 0, board[0][col])
		assert.Equal(t, InitialSeeds, board[1][col])
		assert.Equal(t, InitialSeeds, board[2][col])
		assert.Equal(t, 0, board[3][col])
	}

	assert.Equal(t, TotalSeeds, board.Total())
	assert.Equal(t, 32, board.TerritoryTotal(Player1))
	assert.Equal(t, 32, board.TerritoryTotal(Player2))
}

func TestBoard_HasSeeds(t *testing.T) {
	t.Run("Empty territory cannot move", func(t *testing.T) {
		// Given: a board where only Player1 has seeds
		var board Board
		board[3][5] = 2

		// Then: Player1 can move and Player2 cannot
		assert.True(t, board.HasSeeds(Player1))
		assert.False(t, board.HasSeeds(Player2))
		assert.Equal(t, 0, board.TerritoryTotal(Player2))
	})

	t.Run("Seeds in an outer row count", func(t *testing.T) {
		var board Board
		board[0][0] = 1

		assert.True(t, board.HasSeeds(Player2))
		assert.Equal(t, 1, board.TerritoryTotal(Player2))
	})
}

func TestPit_Valid(t *testing.T) {
	assert.True(t, Pit{Row: 0, Col: 0}.Valid())
	assert.True(t, Pit{Row: 3, Col: 7}.Valid())
	assert.False(t, Pit{Row: -1, Col: 0}.Valid())
	assert.False(t, Pit{Row: 4, Col: 0}.Valid())
	assert.False(t, Pit{Row: 0, Col: 8}.Valid())
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, Player2, Player1.Opponent())
	assert.Equal(t, Player1, Player2.Opponent())
	assert.False(t, NoPlayer.Valid())
	assert.Equal(t, ResultPlayer1, ResultFor(Player1))
	assert.Equal(t, ResultPlayer2, ResultFor(Player2))
	assert.Equal(t, ResultNone, ResultFor(NoPlayer))
}
