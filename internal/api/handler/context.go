package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/api/middleware"
	"github.com/peopledir/people-api/internal/core/domain"
)

// actorID returns the authenticated admin's id, or domain.SystemActor when
// the request carries no session. Gated routes always have a session by the
// time the handler runs; the optional-auth routes may not.
func actorID(c echo.Context) int64 {
	if session := middleware.SessionFrom(c); session != nil {
		return session.AdminID
	}
	return domain.SystemActor
}
