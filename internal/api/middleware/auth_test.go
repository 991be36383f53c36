package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/core/domain"
)

type stubResolver struct {
	sessions map[string]*domain.Session
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*domain.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return session, nil
}

func newStubResolver() *stubResolver {
	return &stubResolver{sessions: map[string]*domain.Session{
		"good-token": {ID: "sid-1", AdminID: 1, Username: "admin"},
	}}
}

func TestRequireSession_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := RequireSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		called = true
		session := SessionFrom(c)
		if session == nil || session.AdminID != 1 {
			t.Fatalf("session not injected: %+v", session)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireSession_BearerFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireSession_StaleToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "revoked-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestOptionalSession_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		if SessionFrom(c) != nil {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalSession_StaleTokenStaysAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "revoked-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		if SessionFrom(c) != nil {
			t.Fatalf("stale token must not yield a session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalSession_ValidTokenInjectsSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalSession(newStubResolver(), "session")
	handler := mw(func(c echo.Context) error {
		session := SessionFrom(c)
		if session == nil || session.Username != "admin" {
			t.Fatalf("expected session, got %+v", session)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
