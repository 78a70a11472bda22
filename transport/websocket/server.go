package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/config"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, player entity.Player, pit entity.Pit) (*entity.MoveOutcome, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, conn *websocket.Conn, gameID string, msg *Message) error

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	playback config.Playback

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase, playback config.Playback) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		games:    games,
		playback: playback,
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleState
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameReset] = server.handleReset

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - binds the connection to one game and processes its messages.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	gameID := req.URL.Query().Get("game_id")
	log := that.logger.With("method", "serveWS", "gameID", gameID)

	if gameID == "" {
		http.Error(writer, "game_id is required", http.StatusBadRequest)
		return
	}

	if _, err := that.games.GetGame(req.Context(), gameID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.Error(writer, "game not found", http.StatusNotFound)
			return
		}

		log.Error("failed to get game", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn, gameID); err != nil {
		log.Info("connection closed", "reason", err)
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, gameID string) error {
	log := that.logger.With("method", "handleMessages", "gameID", gameID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError(ctx, conn, "", reasonBadMessage, err); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendError(ctx, conn, message.Action, reasonUnknownAction, nil); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, conn, gameID, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(ctx context.Context, conn *websocket.Conn, action, reason string, cause error) error {
	payload := ErrorPayload{Action: action, Reason: reason}
	if cause != nil && reason != reasonInternal {
		payload.Error = cause.Error()
	}

	return that.send(ctx, conn, actionError, payload)
}
