package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
)

const (
	actionGameState = "game:state"
	actionGameMove  = "game:move"
	actionGameReset = "game:reset"
	actionGameStep  = "game:step"
	actionError     = "error"
)

const (
	reasonNotFound      = "not_found"
	reasonBadMessage    = "bad_message"
	reasonUnknownAction = "unknown_action"
	reasonInternal      = "internal"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StatePayload struct {
	Game       *entity.Game       `json:"game"`
	Scoreboard *entity.Scoreboard `json:"scoreboard"`
}

type MovePayload struct {
	Row    *int          `json:"row"`
	Col    *int          `json:"col"`
	Player entity.Player `json:"player,omitempty"`
}

// StepPayload is one paced frame of a move being replayed to the client.
type StepPayload struct {
	Index int         `json:"index"`
	Total int         `json:"total"`
	Step  entity.Step `json:"step"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}
