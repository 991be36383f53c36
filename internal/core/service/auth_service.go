package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledir/people-api/internal/api/metrics"
	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

// AuthService implements login, logout and session token resolution.
//
// The session record is authoritative and lives in the session store; the
// token handed to the client is a signed JWT that only names the session id,
// so logout revokes it immediately regardless of the token's expiry.
type AuthService struct {
	admins     ports.AdminRepository
	sessions   ports.SessionStore
	audit      ports.AuditRecorder
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	admins ports.AdminRepository,
	sessions ports.SessionStore,
	audit ports.AuditRecorder,
	jwtSecret string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		admins:     admins,
		sessions:   sessions,
		audit:      audit,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login verifies credentials and establishes a session. An unknown username
// and a wrong password are indistinguishable to the caller. The account's
// last_login field is deliberately left untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.AdminAccount, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		AdminID:   account.ID,
		Username:  account.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", account.Username).Int64("admin_id", account.ID).Msg("admin logged in")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record(ctx, account.ID, nil, domain.ActionLogin,
		fmt.Sprintf("admin %q logged in", account.Username))

	return token, account, nil
}

// Logout destroys the session and records the action against the prior actor.
// A nil session is a no-op: logging out while logged out succeeds silently
// and writes no audit entry.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info().Str("username", session.Username).Int64("admin_id", session.AdminID).Msg("admin logged out")
	s.audit.Record(ctx, session.AdminID, nil, domain.ActionLogout,
		fmt.Sprintf("admin %q logged out", session.Username))

	return nil
}

// Resolve validates a token and returns the live session it references.
// Any parse or lookup failure yields domain.ErrNotAuthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNotAuthenticated
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, domain.ErrNotAuthenticated
	}

	session, err := s.sessions.Find(ctx, sid)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	return session, nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      session.ID,
		"username": session.Username,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
