package ports

import (
	"context"
	"time"

	"github.com/peopledir/people-api/internal/core/domain"
)

// AdminRepository defines persistence for admin accounts.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error)
	// Insert is used only by seeding; usernames are unique.
	Insert(ctx context.Context, account *domain.AdminAccount) error
}

// SessionStore holds server-side session records under a TTL. Find returns
// domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthService implements the login/logout lifecycle and token resolution.
type AuthService interface {
	// Login verifies credentials and establishes a session. The returned token
	// is opaque to callers and is resolved back via Resolve. Unknown usernames
	// and wrong passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.AdminAccount, error)
	// Logout destroys the session. Calling it with no session is a no-op.
	Logout(ctx context.Context, session *domain.Session) error
	// Resolve validates a token and returns the live session it references.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}
