package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

// SessionCookies writes and clears the session cookie. Secure is set only in
// production so that local development over plain HTTP keeps working.
type SessionCookies struct {
	Secure bool
	MaxAge time.Duration
}

func (s SessionCookies) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.MaxAge.Seconds()),
		Expires:  time.Now().Add(s.MaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.Secure,
	})
}

func (s SessionCookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.Secure,
	})
}
