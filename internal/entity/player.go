package entity

import "fmt"

// Player identifies one of the two sides. The zero value means "no player".
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

// Valid - reports whether the player is Player1 or Player2.
func (that Player) Valid() bool {
	return that == Player1 || that == Player2
}

// Opponent - returns the other player.
func (that Player) Opponent() Player {
	if that == Player1 {
		return Player2
	}
	return Player1
}

// Rows - returns the two board rows forming the player's territory.
func (that Player) Rows() [2]int {
	if that == Player1 {
		return [2]int{2, 3}
	}
	return [2]int{0, 1}
}

func (that Player) String() string {
	if !that.Valid() {
		return "none"
	}
	return fmt.Sprintf("player %d", int(that))
}

// Result is the outcome of a finished game.
type Result string

const (
	ResultNone    Result = ""
	ResultPlayer1 Result = "player1"
	ResultPlayer2 Result = "player2"
	ResultTie     Result = "tie"
)

// ResultFor - returns the result in which the given player wins.
func ResultFor(player Player) Result {
	switch player {
	case Player1:
		return ResultPlayer1
	case Player2:
		return ResultPlayer2
	default:
		return ResultNone
	}
}
