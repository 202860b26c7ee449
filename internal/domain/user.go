package domain

import "time"

// User is the domain model for people who submit tickets.
//
// PasswordHash is nil for accounts provisioned without a usable password;
// such accounts cannot authenticate via password login.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
