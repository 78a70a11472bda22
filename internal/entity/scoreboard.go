package entity

// Scoreboard is the summary a UI shows beside the board.
type Scoreboard struct {
	CurrentPlayer   Player `json:"current_player"`
	GameOver        bool   `json:"game_over"`
	Winner          Result `json:"winner,omitempty"`
	Player1Seeds    int    `json:"player1_seeds"`
	Player2Seeds    int    `json:"player2_seeds"`
	Player1CanMove  bool   `json:"player1_can_move"`
	Player2CanMove  bool   `json:"player2_can_move"`
	Player1Captures int    `json:"player1_captures"`
	Player2Captures int    `json:"player2_captures"`
	TotalMoves      int    `json:"total_moves"`
}
