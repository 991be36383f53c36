package domain

import "time"

// Audit actions. One entry is written per state-changing operation.
const (
	ActionLogin        = "login"
	ActionLogout       = "logout"
	ActionCreatePerson = "create_user"
	ActionUpdatePerson = "update_user"
	ActionDeletePerson = "delete_user"
	ActionToggleActive = "toggle_active"
)

// SystemActor is the actor id recorded when no authenticated session is
// present (the ungated isActive toggle).
const SystemActor int64 = 0

// AuditEntry records a single state-changing action. Entries are append-only:
// the application never updates or deletes them, and AffectedID keeps its
// value after the referenced Person is gone.
type AuditEntry struct {
	ID          int64     `json:"id"`
	ActorUserID int64     `json:"actor_user_id"`
	AffectedID  *int64    `json:"affected_id"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details"`
}
