package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-web/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const confettiCount = 5

var errRedisDown = errors.New("redis down")

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameUseCase := usecase.NewGameUseCase(logger, repository.NewMemoryGameRepository(time.Hour))

	return &client{
		t:       t,
		handler: NewRouter(NewGameHandlers(logger, gameUseCase, time.Hour, confettiCount)),
	}
}

func (that *client) do(method, target, body string) *httptest.ResponseRecorder {
	that.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if that.cookie != nil {
		req.AddCookie(that.cookie)
	}

	rec := httptest.NewRecorder()
	that.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == pkg.SessionCookieName {
			that.cookie = cookie
		}
	}

	return rec
}

func (that *client) page() string {
	that.t.Helper()

	rec := that.do(http.MethodGet, "/", "")
	require.Equal(that.t, http.StatusOK, rec.Code)

	return rec.Body.String()
}

func (that *client) play(cells ...int) {
	that.t.Helper()

	for _, cell := range cells {
		rec := that.do(http.MethodPost, "/play/"+strconv.Itoa(cell), "")
		require.Equal(that.t, http.StatusSeeOther, rec.Code)
		require.Equal(that.t, "/", rec.Header().Get("Location"))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestPing(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGameHandlers_Page(t *testing.T) {
	t.Run("New session gets a cookie and an empty board", func(t *testing.T) {
		// Given: a browser without a session
		c := newClient(t)

		// When: the page is requested
		body := c.page()

		// Then: a session cookie is set and X is to move
		require.NotNil(t, c.cookie)
		assert.True(t, pkg.IsValidSessionID(c.cookie.Value))
		assert.Contains(t, body, "Next player: X")
		assert.Equal(t, 9, strings.Count(body, `class="game-square`))
		assert.Contains(t, body, "Go to game start")
		assert.NotContains(t, body, `class="confetti-piece"`)
	})

	t.Run("Play redirects and advances the turn", func(t *testing.T) {
		c := newClient(t)
		c.page()

		// When: X plays the center
		c.play(4)

		// Then: O is to move and the history has a second entry
		body := c.page()
		assert.Contains(t, body, "Next player: O")
		assert.Contains(t, body, "Go to move #1")
	})

	t.Run("Occupied cell is rejected silently", func(t *testing.T) {
		c := newClient(t)
		c.play(4)

		// When: O clicks the same cell
		c.play(4)

		// Then: nothing changed
		body := c.page()
		assert.Contains(t, body, "Next player: O")
		assert.NotContains(t, body, "Go to move #2")
	})

	t.Run("Malformed cell is a bad request", func(t *testing.T) {
		c := newClient(t)

		rec := c.do(http.MethodPost, "/play/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Win shows the winner and confetti", func(t *testing.T) {
		c := newClient(t)

		// When: X completes the top row
		c.play(0, 3, 1, 4, 2)

		// Then: the page announces X and throws confetti
		body := c.page()
		assert.Contains(t, body, "Winner: X")
		assert.Equal(t, confettiCount, strings.Count(body, `class="confetti-piece"`))
		assert.Equal(t, 3, strings.Count(body, "game-square winning"))
	})

	t.Run("Jump and restart", func(t *testing.T) {
		c := newClient(t)
		c.play(0, 3, 1, 4, 2)

		// When: jumping back to move 2
		rec := c.do(http.MethodPost, "/jump/2", "")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		// Then: X is to move again and no confetti is shown
		body := c.page()
		assert.Contains(t, body, "Next player: X")
		assert.NotContains(t, body, `class="confetti-piece"`)
		assert.Contains(t, body, "Go to move #5")

		// When: jumping past the end
		rec = c.do(http.MethodPost, "/jump/9", "")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		// When: restarting
		rec = c.do(http.MethodPost, "/restart", "")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		// Then: the board is empty again
		body = c.page()
		assert.Contains(t, body, "Next player: X")
		assert.NotContains(t, body, "Go to move #1")
	})
}

func TestGameHandlers_API(t *testing.T) {
	t.Run("Get returns a fresh game", func(t *testing.T) {
		c := newClient(t)

		rec := c.do(http.MethodGet, "/api/game", "")

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		require.NotNil(t, resp.Game)
		assert.Equal(t, entity.PlayerX, resp.Game.NextPlayer)
		assert.Len(t, resp.Game.History, 1)
	})

	t.Run("Play and jump", func(t *testing.T) {
		c := newClient(t)

		rec := c.do(http.MethodPost, "/api/game/play", `{"cell": 4}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.PlayerX, decode(t, rec).Game.Board[4])

		rec = c.do(http.MethodPost, "/api/game/jump", `{"move": 0}`)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, 0, resp.Game.CurrentMove)
		assert.Len(t, resp.Game.History, 2)
	})

	t.Run("Rejected play answers conflict with the unchanged game", func(t *testing.T) {
		c := newClient(t)
		c.do(http.MethodPost, "/api/game/play", `{"cell": 4}`)

		rec := c.do(http.MethodPost, "/api/game/play", `{"cell": 4}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		resp := decode(t, rec)
		assert.Contains(t, resp.Error, "occupied")
		assert.Len(t, resp.Game.History, 2)
	})

	t.Run("Out of range jump answers conflict", func(t *testing.T) {
		c := newClient(t)

		rec := c.do(http.MethodPost, "/api/game/jump", `{"move": 3}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decode(t, rec).Error, "out of history range")
	})

	t.Run("Malformed bodies are bad requests", func(t *testing.T) {
		c := newClient(t)

		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/game/play", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/game/play", `nope`).Code)
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/game/jump", `{"cell": 1}`).Code)
	})

	t.Run("Delete restarts", func(t *testing.T) {
		c := newClient(t)
		c.do(http.MethodPost, "/api/game/play", `{"cell": 4}`)

		rec := c.do(http.MethodDelete, "/api/game", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode(t, rec).Game.History, 1)
	})
}

type failingUseCase struct{}

func (failingUseCase) GetOrCreateGame(context.Context, string) (*entity.Game, error) {
	return nil, errRedisDown
}

func (failingUseCase) Play(context.Context, string, int) (*entity.Game, error) {
	return nil, errRedisDown
}

func (failingUseCase) JumpTo(context.Context, string, int) (*entity.Game, error) {
	return nil, errRedisDown
}

func (failingUseCase) Restart(context.Context, string) (*entity.Game, error) {
	return nil, errRedisDown
}

func TestGameHandlers_StorageFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewRouter(NewGameHandlers(logger, failingUseCase{}, time.Hour, confettiCount))

	for _, tc := range []struct {
		method, target, body string
	}{
		{http.MethodGet, "/", ""},
		{http.MethodPost, "/play/1", ""},
		{http.MethodPost, "/jump/0", ""},
		{http.MethodPost, "/restart", ""},
		{http.MethodGet, "/api/game", ""},
		{http.MethodPost, "/api/game/play", `{"cell": 1}`},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

func TestRows(t *testing.T) {
	cells := presenter.NewGameView(entity.NewGame()).Cells

	result := rows(cells)

	require.Len(t, result, 3)
	for i, row := range result {
		require.Len(t, row, 3)
		assert.Equal(t, i*3, row[0].Index)
	}
}
