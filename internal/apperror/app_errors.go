package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrEmptyPit       = errors.New("pit is empty")
	ErrWrongTerritory = errors.New("pit is outside the player's territory")
	ErrEngineBusy     = errors.New("a move is already in progress")
	ErrInvalidPit     = errors.New("invalid pit")
	ErrInvalidPlayer  = errors.New("invalid player")
	ErrNotFound       = errors.New("not found")
)

const (
	ReasonGameOver       = "game_over"
	ReasonNotYourTurn    = "not_your_turn"
	ReasonEmptyPit       = "empty_pit"
	ReasonWrongTerritory = "wrong_territory"
	ReasonEngineBusy     = "engine_busy"
	ReasonInvalidPit     = "invalid_pit"
	ReasonInvalidPlayer  = "invalid_player"
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrGameFinished, ReasonGameOver},
	{ErrNotYourTurn, ReasonNotYourTurn},
	{ErrEmptyPit, ReasonEmptyPit},
	{ErrWrongTerritory, ReasonWrongTerritory},
	{ErrEngineBusy, ReasonEngineBusy},
	{ErrInvalidPit, ReasonInvalidPit},
	{ErrInvalidPlayer, ReasonInvalidPlayer},
}

// Reason - returns the wire code of a rejected move, or "" if err is not a rejection.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}

	return ""
}

// IsRejection - reports whether err is a deterministic move rejection.
func IsRejection(err error) bool {
	return Reason(err) != ""
}
