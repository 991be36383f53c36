package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peopledir/people-api/internal/core/domain"
)

type stubAuditRepo struct {
	entries   []domain.AuditEntry
	failWith  error
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) FindRecent(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	r.lastLimit = limit
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]domain.AuditEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = r.entries[len(r.entries)-1-i]
	}
	return out, nil
}

func TestAuditService_Record_StampsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	affected := int64(7)
	svc.Record(context.Background(), 1, &affected, domain.ActionCreatePerson, "created person")

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.Timestamp.IsZero() {
		t.Fatalf("expected server-assigned timestamp")
	}
	if entry.ActorUserID != 1 || *entry.AffectedID != 7 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestAuditService_Record_SwallowsStorageFailure(t *testing.T) {
	repo := &stubAuditRepo{failWith: errors.New("disk on fire")}
	svc := NewAuditService(repo, zerolog.Nop())

	// Must not panic and has no error to return: logging is fire-and-forget.
	svc.Record(context.Background(), 1, nil, domain.ActionLogin, "admin logged in")

	if len(repo.entries) != 0 {
		t.Fatalf("entry should have been dropped")
	}
}

func TestAuditService_Recent_NewestFirstAndClamped(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	svc.Record(context.Background(), 1, nil, domain.ActionLogin, "first")
	svc.Record(context.Background(), 1, nil, domain.ActionLogout, "second")

	entries, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if repo.lastLimit != defaultAuditLimit {
		t.Fatalf("expected limit clamped to %d, got %d", defaultAuditLimit, repo.lastLimit)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Details != "second" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Details)
	}
}
