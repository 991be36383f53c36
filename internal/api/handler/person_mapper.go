package handler

import (
	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toPersonResponse(p *domain.Person) personResponse {
	return personResponse{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Age,
		City:     p.City,
		Job:      p.Job,
		IsActive: p.IsActive,
	}
}

func toListResponse(r *ports.ListPersonsResult) listPersonsResponse {
	items := make([]personResponse, len(r.Items))
	for i := range r.Items {
		items[i] = toPersonResponse(&r.Items[i])
	}
	return listPersonsResponse{
		Items:      items,
		Page:       r.Page,
		PerPage:    r.PerPage,
		TotalItems: r.TotalItems,
		TotalPages: r.TotalPages,
	}
}

func toAdminResponse(a *domain.AdminAccount) adminResponse {
	return adminResponse{
		ID:       a.ID,
		Username: a.Username,
		Fullname: a.Fullname,
		Role:     a.Role,
	}
}

func toAuditResponse(entries []domain.AuditEntry) []auditEntryResponse {
	out := make([]auditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = auditEntryResponse{
			ID:          e.ID,
			ActorUserID: e.ActorUserID,
			AffectedID:  e.AffectedID,
			Action:      e.Action,
			Timestamp:   e.Timestamp.UTC(),
			Details:     e.Details,
		}
	}
	return out
}
