package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo.Context key holding the authenticated user id.
const UserIDKey = "userId"

// TokenParser verifies a session token and returns the user id it carries.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Session validates the JWT from the named cookie and injects the user id
// into the context.
func Session(cookieName string, tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookieName)
			if err != nil {
				if errors.Is(err, http.ErrNoCookie) {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing session cookie")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session cookie")
			}
			if ck.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session cookie")
			}

			userID, err := tokens.Parse(ck.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
