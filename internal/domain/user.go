package domain

import "time"

// User is the domain model for platform accounts across all modules.
type User struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	Department   string
	Phone        string
	Address      string
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display purposes.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
