package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
	"github.com/rocketscienceinc/igisoro-backend/internal/usecase"
)

func (that *Server) handleState(ctx context.Context, conn *websocket.Conn, gameID string, msg *Message) error {
	game, err := that.games.GetGame(ctx, gameID)
	if err != nil {
		return that.reject(ctx, conn, msg.Action, err)
	}

	return that.send(ctx, conn, msg.Action, StatePayload{Game: game, Scoreboard: usecase.Scoreboard(game)})
}

func (that *Server) handleReset(ctx context.Context, conn *websocket.Conn, gameID string, msg *Message) error {
	game, err := that.games.ResetGame(ctx, gameID)
	if err != nil {
		return that.reject(ctx, conn, msg.Action, err)
	}

	return that.send(ctx, conn, msg.Action, StatePayload{Game: game, Scoreboard: usecase.Scoreboard(game)})
}

// handleMove - plays the move, replays its steps with playback pacing and ends with the outcome.
func (that *Server) handleMove(ctx context.Context, conn *websocket.Conn, gameID string, msg *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(ctx, conn, msg.Action, reasonBadMessage, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return that.reject(ctx, conn, msg.Action, apperror.ErrInvalidPit)
	}

	outcome, err := that.games.MakeMove(ctx, gameID, payload.Player, entity.Pit{Row: *payload.Row, Col: *payload.Col})
	if err != nil {
		return that.reject(ctx, conn, msg.Action, err)
	}

	total := len(outcome.Steps)
	for i, step := range outcome.Steps {
		if err = that.send(ctx, conn, actionGameStep, StepPayload{Index: i, Total: total, Step: step}); err != nil {
			return err
		}

		if err = pause(ctx, that.delayFor(step.Action)); err != nil {
			return err
		}
	}

	return that.send(ctx, conn, msg.Action, outcome)
}

// reject - reports a failed request to the client; only write failures end the connection.
func (that *Server) reject(ctx context.Context, conn *websocket.Conn, action string, err error) error {
	switch {
	case apperror.IsRejection(err):
		return that.sendError(ctx, conn, action, apperror.Reason(err), err)
	case errors.Is(err, apperror.ErrNotFound):
		return that.sendError(ctx, conn, action, reasonNotFound, err)
	default:
		that.logger.Error("request failed", "action", action, "error", err)
		return that.sendError(ctx, conn, action, reasonInternal, err)
	}
}

func (that *Server) delayFor(action entity.StepAction) time.Duration {
	switch action {
	case entity.StepPickUp:
		return that.playback.RelayDelay
	case entity.StepCapture:
		return that.playback.CaptureHighlight
	default:
		return that.playback.SowDelay
	}
}

func pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
