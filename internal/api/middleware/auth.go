package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/core/domain"
)

// SessionKey is the echo context key under which a resolved session is stored.
const SessionKey = "session"

// SessionResolver narrows ports.AuthService to what the gate needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// RequireSession gates a route behind an active admin session. Without one
// the request is rejected with 403 before the handler runs, so gated
// operations never reach the point of producing side effects.
func RequireSession(resolver SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c, cookieName)
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrNotAuthenticated.Error())
			}

			session, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrNotAuthenticated.Error())
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// OptionalSession resolves a session when one is presented but lets the
// request through either way. Ungated routes that still want an actor id
// (the isActive toggle, logout) use this; an absent or stale session just
// leaves the request anonymous.
func OptionalSession(resolver SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c, cookieName)
			if token != "" {
				if session, err := resolver.Resolve(c.Request().Context(), token); err == nil {
					c.Set(SessionKey, session)
				}
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session placed in context by the middleware, or nil
// when the request is anonymous.
func SessionFrom(c echo.Context) *domain.Session {
	session, _ := c.Get(SessionKey).(*domain.Session)
	return session
}

// extractToken reads the session token from the cookie, falling back to an
// Authorization bearer header for non-browser clients.
func extractToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
