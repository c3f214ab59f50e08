package domain

import "time"

// Admin roles.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type Admin struct {
	ID           string
	Email        string // lowercase, unique
	Name         string
	PasswordHash string // argon2 encoded
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner reports whether the admin holds the owner role.
func (a Admin) IsOwner() bool { return a.Role == RoleOwner }

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}
