package model

import "time"

// User is a dashboard account. PasswordHash is a bcrypt hash and never
// leaves the service layer.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)
