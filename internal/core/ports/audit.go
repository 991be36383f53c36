package ports

import (
	"context"

	"github.com/peopledir/people-api/internal/core/domain"
)

// AuditRepository appends to and reads from the append-only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// FindRecent returns up to limit entries, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AuditRecorder is the write side used by the other services. Record is
// best-effort: storage failures are reported internally and swallowed so a
// lost audit entry never fails the operation that triggered it.
type AuditRecorder interface {
	Record(ctx context.Context, actorID int64, affectedID *int64, action, details string)
}

// AuditService is the full audit surface: best-effort writes plus the gated
// read used by the logs endpoint.
type AuditService interface {
	AuditRecorder
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
