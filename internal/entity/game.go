package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Stats are the running counters shown next to the board.
type Stats struct {
	TotalMoves      int       `json:"total_moves"`
	Player1Captures int       `json:"player1_captures"`
	Player2Captures int       `json:"player2_captures"`
	StartedAt       time.Time `json:"started_at"`
}

func (that *Stats) Captures(player Player) int {
	if player == Player1 {
		return that.Player1Captures
	}
	return that.Player2Captures
}

func (that *Stats) AddCapture(player Player, amount int) {
	if player == Player1 {
		that.Player1Captures += amount
		return
	}
	that.Player2Captures += amount
}

type Game struct {
	ID            string       `json:"id"`
	Board         Board        `json:"board"`
	CurrentPlayer Player       `json:"current_player"`
	Status        string       `json:"status"`
	Winner        Result       `json:"winner,omitempty"`
	Stats         Stats        `json:"stats"`
	LastCapture   *Capture     `json:"last_capture,omitempty"`
	History       []MoveRecord `json:"history,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:            id,
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusOngoing,
		Stats:         Stats{StartedAt: time.Now().UTC()},
	}
}

// Reset - puts the game back to its starting position, keeping the ID.
func (that *Game) Reset() {
	*that = *NewGame(that.ID)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// SeedsInPlay - board seeds plus both capture tallies; always TotalSeeds.
func (that *Game) SeedsInPlay() int {
	return that.Board.Total() + that.Stats.Player1Captures + that.Stats.Player2Captures
}

// Duration - time elapsed since the game started.
func (that *Game) Duration(now time.Time) time.Duration {
	if that.Stats.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(that.Stats.StartedAt)
}

// Clone - returns a deep copy that shares no memory with the original.
func (that *Game) Clone() *Game {
	clone := *that

	if that.LastCapture != nil {
		lastCapture := *that.LastCapture
		clone.LastCapture = &lastCapture
	}

	if that.History != nil {
		clone.History = make([]MoveRecord, len(that.History))
		copy(clone.History, that.History)
	}

	return &clone
}
