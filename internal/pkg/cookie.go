package pkg

import (
	"net/http"
	"time"
)

const SessionCookieName = "user_session"

// SessionFromRequest - returns the session id carried by req, if it is well formed.
func SessionFromRequest(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil || !IsValidSessionID(cookie.Value) {
		return "", false
	}

	return cookie.Value, true
}

// NewSessionCookie - creates a cookie for a new session. A zero ttl makes it a browser-session cookie.
func NewSessionCookie(ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    GenerateNewSessionID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}

	return cookie
}

// SessionID - returns the session of req, setting a new cookie on w when it is missing or malformed.
func SessionID(w http.ResponseWriter, req *http.Request, ttl time.Duration) (string, bool) {
	if id, ok := SessionFromRequest(req); ok {
		return id, false
	}

	cookie := NewSessionCookie(ttl)
	http.SetCookie(w, cookie)

	return cookie.Value, true
}
