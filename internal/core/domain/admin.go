package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminAccount is a credentialed actor permitted to authenticate and
// perform gated mutations. Accounts are created only by seeding.
type AdminAccount struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Fullname     string `json:"fullname"`
	Role         string `json:"role"`
	// LastLogin exists in the stored schema but is never written: login does
	// not stamp it. Kept as-is rather than silently "fixed".
	LastLogin *time.Time `json:"last_login"`
}

// Session is the server-side record of a successful login. It lives in the
// session store until logout or expiry; the client only ever holds a signed
// token referencing it.
type Session struct {
	ID        string    `json:"id"`
	AdminID   int64     `json:"admin_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
