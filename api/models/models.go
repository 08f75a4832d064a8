package models

import (
	"time"

	"github.com/samber/lo"

	"bistro/database"
)

// TokenRequest is the identity claim presented at sign-in.
type TokenRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// SignupRequest is the body of the signup endpoint.
type SignupRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// User is the API view of a user record.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	Admin     bool   `json:"admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToUser converts a store record to its API view.
func ToUser(u database.User) User {
	out := User{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Admin: u.Role == database.RoleAdmin,
	}
	if !u.CreatedAt.IsZero() {
		out.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// ToUsers converts a list of store records to their API views.
func ToUsers(users []database.User) []User {
	return lo.Map(users, func(u database.User, _ int) User {
		return ToUser(u)
	})
}
