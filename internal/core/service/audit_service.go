package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/peopledir/people-api/internal/api/metrics"
	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditService writes and reads the append-only audit trail.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one entry. Audit logging is best-effort: a storage failure
// is logged and counted, never returned, so the primary operation's success
// response is never blocked by a lost entry.
func (s *AuditService) Record(ctx context.Context, actorID int64, affectedID *int64, action, details string) {
	entry := &domain.AuditEntry{
		ActorUserID: actorID,
		AffectedID:  affectedID,
		Action:      action,
		Timestamp:   time.Now().UTC(),
		Details:     details,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditDroppedTotal.Inc()
		s.logger.Warn().Err(err).
			Str("action", action).
			Int64("actor_id", actorID).
			Msg("audit entry dropped")
		return
	}

	metrics.AuditEntriesTotal.WithLabelValues(action).Inc()
}

// Recent returns up to limit entries, newest first. Non-positive or oversized
// limits fall back to the default.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.repo.FindRecent(ctx, limit)
}
