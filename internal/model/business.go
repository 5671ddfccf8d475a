package model

import "time"

// Business is a workplace shifts are recorded against.
type Business struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// User roles.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User is an account in the remote store.
type User struct {
	ID    string `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`
	Role  string `json:"role" db:"role"`
}

// IsAdmin reports whether the user may manage users, businesses, and
// report templates.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
