package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for plain confirmation messages.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

// createPersonRequest uses pointer fields where zero values are legal input,
// so "missing" and "zero" stay distinguishable for the required checks.
type createPersonRequest struct {
	Name     string `json:"name"     validate:"required"`
	Age      *int   `json:"age"      validate:"required,gte=0"`
	City     string `json:"city"     validate:"required"`
	Job      string `json:"job"      validate:"required"`
	IsActive *bool  `json:"isActive"`
}

// updatePersonRequest carries a partial edit; absent fields stay untouched.
type updatePersonRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
	City *string `json:"city"`
	Job  *string `json:"job"`
}

type togglePersonRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type personResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	City     string `json:"city"`
	Job      string `json:"job"`
	IsActive bool   `json:"isActive"`
}

// listPersonsResponse is the pagination contract shared by every revision of
// the directory listing: items plus metadata computed before slicing.
type listPersonsResponse struct {
	Items      []personResponse `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalItems int64            `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Message string        `json:"message"`
	User    adminResponse `json:"user"`
}

type auditEntryResponse struct {
	ID          int64     `json:"id"`
	ActorUserID int64     `json:"actor_user_id"`
	AffectedID  *int64    `json:"affected_id"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details"`
}
