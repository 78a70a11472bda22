package entity

import (
	"fmt"
	"strings"
)

const (
	Rows = 4
	Cols = 8

	// InitialSeeds is the seed count of every inner-row pit at the start.
	InitialSeeds = 4

	// TotalSeeds is conserved between the board and the capture tallies.
	TotalSeeds = 2 * Cols * InitialSeeds
)

// Pit addresses one cell of the board.
type Pit struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Pit) Valid() bool {
	return that.Row >= 0 && that.Row < Rows && that.Col >= 0 && that.Col < Cols
}

func (that Pit) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Owner - returns the player whose territory contains the row.
// Rows 0 and 1 belong to Player2, rows 2 and 3 to Player1.
func Owner(row int) Player {
	if row >= 2 {
		return Player1
	}
	return Player2
}

// AdjacentPit - returns the next pit on the counter-clockwise sowing ring.
//
// Rows 0 and 2 run left to right, rows 1 and 3 run right to left; the ring
// continues (0,7)->(1,7), (1,0)->(2,0), (2,7)->(3,7) and (3,0)->(0,0).
func AdjacentPit(pit Pit) Pit {
	switch pit.Row {
	case 0:
		if pit.Col < Cols-1 {
			return Pit{Row: 0, Col: pit.Col + 1}
		}
		return Pit{Row: 1, Col: Cols - 1}
	case 1:
		if pit.Col > 0 {
			return Pit{Row: 1, Col: pit.Col - 1}
		}
		return Pit{Row: 2, Col: 0}
	case 2:
		if pit.Col < Cols-1 {
			return Pit{Row: 2, Col: pit.Col + 1}
		}
		return Pit{Row: 3, Col: Cols - 1}
	case 3:
		if pit.Col > 0 {
			return Pit{Row: 3, Col: pit.Col - 1}
		}
		return Pit{Row: 0, Col: 0}
	}

	panic(fmt.Sprintf("adjacent pit: row out of range: %s", pit))
}

// Board holds the seed count of every pit, indexed [row][col].
type Board [Rows][Cols]int

// NewBoard - returns the starting layout: both inner rows full, outer rows empty.
func NewBoard() Board {
	var board Board
	for col := 0; col < Cols; col++ {
		board[1][col] = InitialSeeds
		board[2][col] = InitialSeeds
	}
	return board
}

func (that *Board) Seeds(pit Pit) int {
	return that[pit.Row][pit.Col]
}

// Total - returns the number of seeds left on the board.
func (that *Board) Total() int {
	total := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			total += that[row][col]
		}
	}
	return total
}

// TerritoryTotal - sums the seeds in the player's two rows.
func (that *Board) TerritoryTotal(player Player) int {
	total := 0
	for _, row := range player.Rows() {
		for col := 0; col < Cols; col++ {
			total += that[row][col]
		}
	}
	return total
}

// HasSeeds - reports whether the player has at least one non-empty pit.
func (that *Board) HasSeeds(player Player) bool {
	for _, row := range player.Rows() {
		for col := 0; col < Cols; col++ {
			if that[row][col] > 0 {
				return true
			}
		}
	}
	return false
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%2d", that[row][col])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
