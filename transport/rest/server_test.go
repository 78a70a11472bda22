package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/igisoro-backend/internal/apperror"
	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
	"github.com/rocketscienceinc/igisoro-backend/internal/repository"
	"github.com/rocketscienceinc/igisoro-backend/internal/usecase"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

	return New(logger, manager)
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	return rec
}

func createGame(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp gameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Game.ID)

	return resp.Game.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp.Error
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGameLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Given: a new game
	id := createGame(t, srv)

	// When: reading it
	rec := doRequest(t, srv, http.MethodGet, "/games/"+id, "")

	// Then: the scoreboard shows the starting position
	require.Equal(t, http.StatusOK, rec.Code)

	var state gameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, entity.NewBoard(), state.Game.Board)
	assert.Equal(t, 32, state.Scoreboard.Player1Seeds)
	assert.Equal(t, 32, state.Scoreboard.Player2Seeds)
	assert.Equal(t, entity.Player1, state.Scoreboard.CurrentPlayer)

	// When: Player1 plays (2,0)
	rec = doRequest(t, srv, http.MethodPost, "/games/"+id+"/moves", `{"row":2,"col":0}`)

	// Then: the outcome hands the turn over and the board is conserved
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome entity.MoveOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, entity.Player2, outcome.CurrentPlayer)
	assert.Equal(t, entity.TotalSeeds, outcome.Board.Total())
	assert.NotEmpty(t, outcome.Steps)

	// When: resetting
	rec = doRequest(t, srv, http.MethodPost, "/games/"+id+"/reset", "")

	// Then: the board is back to the start
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, entity.NewBoard(), state.Game.Board)
	assert.Equal(t, entity.Player1, state.Game.CurrentPlayer)

	// When: deleting
	rec = doRequest(t, srv, http.MethodDelete, "/games/"+id, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Then: the game is gone
	rec = doRequest(t, srv, http.MethodGet, "/games/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, reasonNotFound, decodeError(t, rec))
}

func TestMoveRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		reason string
	}{
		{"Opponent pit", `{"row":1,"col":0}`, http.StatusConflict, apperror.ReasonNotYourTurn},
		{"Not the player's turn", `{"row":1,"col":0,"player":2}`, http.StatusConflict, apperror.ReasonNotYourTurn},
		{"Outside own rows", `{"row":1,"col":0,"player":1}`, http.StatusUnprocessableEntity, apperror.ReasonWrongTerritory},
		{"Out of range", `{"row":7,"col":0}`, http.StatusBadRequest, apperror.ReasonInvalidPit},
		{"Missing coordinates", `{"row":2}`, http.StatusBadRequest, apperror.ReasonInvalidPit},
		{"Unknown player", `{"row":2,"col":0,"player":5}`, http.StatusBadRequest, apperror.ReasonInvalidPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			id := createGame(t, srv)

			rec := doRequest(t, srv, http.MethodPost, "/games/"+id+"/moves", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.reason, decodeError(t, rec))

			// Then: the game is untouched
			rec = doRequest(t, srv, http.MethodGet, "/games/"+id, "")
			var state gameResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
			assert.Equal(t, entity.NewBoard(), state.Game.Board)
			assert.Zero(t, state.Game.Stats.TotalMoves)
		})
	}
}

func TestMoveOnEmptyPit(t *testing.T) {
	srv := newTestServer(t)
	id := createGame(t, srv)

	// Given: (2,0) emptied by Player1 and a reply by Player2
	require.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodPost, "/games/"+id+"/moves", `{"row":2,"col":0}`).Code)
	require.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodPost, "/games/"+id+"/moves", `{"row":1,"col":7}`).Code)

	rec := doRequest(t, srv, http.MethodGet, "/games/"+id, "")
	var state gameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, entity.Player1, state.Game.CurrentPlayer)

	var empty *entity.Pit
	for _, row := range entity.Player1.Rows() {
		for col := 0; col < entity.Cols; col++ {
			if state.Game.Board[row][col] == 0 {
				empty = &entity.Pit{Row: row, Col: col}
				break
			}
		}
		if empty != nil {
			break
		}
	}
	require.NotNil(t, empty)

	// When: Player1 plays an empty pit
	rec = doRequest(t, srv, http.MethodPost, "/games/"+id+"/moves", fmt.Sprintf(`{"row":%d,"col":%d}`, empty.Row, empty.Col))

	// Then: it is rejected as unprocessable
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apperror.ReasonEmptyPit, decodeError(t, rec))
}

func TestPlayable(t *testing.T) {
	srv := newTestServer(t)
	id := createGame(t, srv)

	tests := []struct {
		name     string
		path     string
		status   int
		playable bool
	}{
		{"Own pit", "/pits/2/3", http.StatusOK, true},
		{"Opponent pit", "/pits/0/3", http.StatusOK, false},
		{"Out of range", "/pits/4/0", http.StatusBadRequest, false},
		{"Not a number", "/pits/a/0", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/games/"+id+tt.path, "")

			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}

			var resp playableResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.playable, resp.Playable)
		})
	}
}

func TestUnknownGame(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/games/nope", ""},
		{http.MethodPost, "/games/nope/moves", `{"row":2,"col":0}`},
		{http.MethodPost, "/games/nope/reset", ""},
		{http.MethodDelete, "/games/nope", ""},
		{http.MethodGet, "/games/nope/pits/2/0", ""},
	} {
		rec := doRequest(t, srv, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrapped: %w", apperror.ErrEngineBusy), http.StatusConflict},
		{apperror.ErrGameFinished, http.StatusConflict},
		{apperror.ErrEmptyPit, http.StatusUnprocessableEntity},
		{repository.ErrGameNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, _ := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}
