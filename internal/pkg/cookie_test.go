package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	t.Run("Creates a cookie when missing", func(t *testing.T) {
		// Given: a request without a session cookie
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		// When: resolving the session
		id, created := SessionID(rec, req, time.Hour)

		// Then: a new cookie is set
		require.True(t, created)
		assert.True(t, IsValidSessionID(id))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("Reuses a valid cookie", func(t *testing.T) {
		existing := GenerateNewSessionID()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})
		rec := httptest.NewRecorder()

		id, created := SessionID(rec, req, time.Hour)

		assert.False(t, created)
		assert.Equal(t, existing, id)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("Replaces a malformed cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "game:*"})
		rec := httptest.NewRecorder()

		id, created := SessionID(rec, req, 0)

		assert.True(t, created)
		assert.NotEqual(t, "game:*", id)
	})
}
