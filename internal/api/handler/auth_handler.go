package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/api/middleware"
	"github.com/peopledir/people-api/internal/core/ports"
)

// AuthHandler handles login and logout, including the session cookie.
type AuthHandler struct {
	service    ports.AuthService
	cookieName string
	sessionTTL time.Duration
}

func NewAuthHandler(service ports.AuthService, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, cookieName: cookieName, sessionTTL: sessionTTL}
}

// Login handles POST /api/login.
//
// @Summary      Log in as an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Message: "login successful",
		User:    toAdminResponse(account),
	})
}

// Logout handles POST /api/logout. Logging out without a session is a
// successful no-op, so the endpoint is idempotent.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if err := h.service.Logout(c.Request().Context(), session); err != nil {
		return err
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}
