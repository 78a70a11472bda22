package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
	"github.com/rocketscienceinc/igisoro-backend/internal/usecase"
)

const (
	reasonNotFound   = "not_found"
	reasonBadRequest = "bad_request"
	reasonInternal   = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type gameResponse struct {
	Game       *entity.Game       `json:"game"`
	Scoreboard *entity.Scoreboard `json:"scoreboard"`
}

type playableResponse struct {
	Pit      entity.Pit `json:"pit"`
	Playable bool       `json:"playable"`
}

type moveRequest struct {
	Row    *int          `json:"row"`
	Col    *int          `json:"col"`
	Player entity.Player `json:"player"`
}

type GameHandler interface {
	Create(ctx echo.Context) error
	Get(ctx echo.Context) error
	Delete(ctx echo.Context) error
	Playable(ctx echo.Context) error
	Move(ctx echo.Context) error
	Reset(ctx echo.Context) error
}

type gameHandler struct {
	logger *slog.Logger
	games  gameUseCase
}

func NewGameHandler(logger *slog.Logger, games gameUseCase) GameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *gameHandler) Create(ctx echo.Context) error {
	game, err := that.games.CreateGame(ctx.Request().Context())
	if err != nil {
		return that.fail(ctx, "Create", err)
	}

	return ctx.JSON(http.StatusCreated, gameResponse{Game: game, Scoreboard: usecase.Scoreboard(game)})
}

func (that *gameHandler) Get(ctx echo.Context) error {
	game, err := that.games.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Get", err)
	}

	return ctx.JSON(http.StatusOK, gameResponse{Game: game, Scoreboard: usecase.Scoreboard(game)})
}

func (that *gameHandler) Delete(ctx echo.Context) error {
	if err := that.games.DeleteGame(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.fail(ctx, "Delete", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *gameHandler) Playable(ctx echo.Context) error {
	row, rowErr := strconv.Atoi(ctx.Param("row"))
	col, colErr := strconv.Atoi(ctx.Param("col"))
	pit := entity.Pit{Row: row, Col: col}

	if rowErr != nil || colErr != nil || !pit.Valid() {
		return that.fail(ctx, "Playable", apperror.ErrInvalidPit)
	}

	playable, err := that.games.IsPlayable(ctx.Request().Context(), ctx.Param("id"), pit)
	if err != nil {
		return that.fail(ctx, "Playable", err)
	}

	return ctx.JSON(http.StatusOK, playableResponse{Pit: pit, Playable: playable})
}

func (that *gameHandler) Move(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: reasonBadRequest, Message: "invalid move body"})
	}

	if req.Row == nil || req.Col == nil {
		return that.fail(ctx, "Move", apperror.ErrInvalidPit)
	}

	pit := entity.Pit{Row: *req.Row, Col: *req.Col}

	outcome, err := that.games.MakeMove(ctx.Request().Context(), ctx.Param("id"), req.Player, pit)
	if err != nil {
		return that.fail(ctx, "Move", err)
	}

	return ctx.JSON(http.StatusOK, outcome)
}

func (that *gameHandler) Reset(ctx echo.Context) error {
	game, err := that.games.ResetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Reset", err)
	}

	return ctx.JSON(http.StatusOK, gameResponse{Game: game, Scoreboard: usecase.Scoreboard(game)})
}

func (that *gameHandler) fail(ctx echo.Context, method string, err error) error {
	status, reason := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		return ctx.JSON(status, errorResponse{Error: reason})
	}

	return ctx.JSON(status, errorResponse{Error: reason, Message: err.Error()})
}

// statusFor - maps an error to its HTTP status and wire reason.
func statusFor(err error) (int, string) {
	if errors.Is(err, apperror.ErrNotFound) {
		return http.StatusNotFound, reasonNotFound
	}

	reason := apperror.Reason(err)

	switch {
	case errors.Is(err, apperror.ErrEngineBusy),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict, reason
	case errors.Is(err, apperror.ErrEmptyPit),
		errors.Is(err, apperror.ErrWrongTerritory):
		return http.StatusUnprocessableEntity, reason
	case errors.Is(err, apperror.ErrInvalidPit),
		errors.Is(err, apperror.ErrInvalidPlayer):
		return http.StatusBadRequest, reason
	default:
		return http.StatusInternalServerError, reasonInternal
	}
}
