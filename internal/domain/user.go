package domain

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered account
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
