package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	IsPlayable(ctx context.Context, id string, pit entity.Pit) (bool, error)
	MakeMove(ctx context.Context, id string, player entity.Player, pit entity.Pit) (*entity.MoveOutcome, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ping := NewPingHandler()
	game := NewGameHandler(logger, games)

	e.GET("/ping", ping.Ping)

	e.POST("/games", game.Create)
	e.GET("/games/:id", game.Get)
	e.DELETE("/games/:id", game.Delete)
	e.GET("/games/:id/pits/:row/:col", game.Playable)
	e.POST("/games/:id/moves", game.Move)
	e.POST("/games/:id/reset", game.Reset)

	return &Server{
		logger: logger.With("component", "rest"),
		echo:   e,
	}
}

func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	that.echo.Server.ReadTimeout = 10 * time.Second
	that.echo.Server.WriteTimeout = 10 * time.Second
	that.echo.Server.IdleTimeout = 30 * time.Second

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.echo.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
