package domain

import "errors"

// Person is the primary directory record managed by the API.
// The id is assigned once from a sequence and never changes.
type Person struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	City     string `json:"city"`
	Job      string `json:"job"`
	IsActive bool   `json:"is_active"`
}

var ErrPersonNotFound = errors.New("person not found")
var ErrNotAuthenticated = errors.New("authentication required")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAdminNotFound = errors.New("admin account not found")
var ErrAdminExists = errors.New("admin account already exists")
var ErrSessionNotFound = errors.New("session not found")
