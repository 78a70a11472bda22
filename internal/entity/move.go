package entity

// StepAction names what happened in a single intermediate step of a move.
type StepAction string

const (
	StepPickUp  StepAction = "pick_up"
	StepSow     StepAction = "sow"
	StepCapture StepAction = "capture"
)

// Step is one externally observable board state produced while sowing.
type Step struct {
	Action StepAction `json:"action"`
	Pit    Pit        `json:"pit"`
	InHand int        `json:"in_hand"`
	Board  Board      `json:"board"`
}

// Capture marks where seeds were taken from the opponent and how many.
type Capture struct {
	Pit    Pit `json:"pit"`
	Amount int `json:"amount"`
}

// MoveRecord is an entry of the append-only move history.
type MoveRecord struct {
	Player     Player `json:"player"`
	Origin     Pit    `json:"origin"`
	Captured   int    `json:"captured"`
	BoardAfter Board  `json:"board_after"`
}

// MoveOutcome is everything a presentation layer needs after a move.
type MoveOutcome struct {
	Number        int      `json:"number"`
	Player        Player   `json:"player"`
	Origin        Pit      `json:"origin"`
	Board         Board    `json:"board"`
	Steps         []Step   `json:"steps"`
	Captured      int      `json:"captured"`
	Capture       *Capture `json:"capture,omitempty"`
	CurrentPlayer Player   `json:"current_player"`
	GameOver      bool     `json:"game_over"`
	Winner        Result   `json:"winner,omitempty"`
}
