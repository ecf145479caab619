// Package models defines the data structures held by the store and
// provides the core types used throughout the application.
package models

// User represents an administrator account. Passwords are stored and
// compared as plain text; this backend is not hardened for multi-user
// deployments.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Never serialize credentials
}
