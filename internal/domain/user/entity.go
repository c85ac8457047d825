package user

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           string    // opaque unique identifier, immutable
	Name         string    // display name
	Email        string    // unique across all users
	PhoneNumber  string    // free-form contact number
	PasswordHash string    // bcrypt hash, never serialized to clients
	Role         string    // RoleUser or RoleAdmin
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
