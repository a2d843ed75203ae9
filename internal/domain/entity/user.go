// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// User represents a person allowed to sign in to the ledger.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the given role.
func NewUser(email, name, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Principal is the authenticated identity behind a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsAdmin reports whether the principal may mutate ledger data.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Audit holds who created and last updated a record.
type Audit struct {
	CreatedBy      uuid.UUID
	CreatedByEmail string
	UpdatedBy      uuid.UUID
	UpdatedByEmail string
}

// NewAudit stamps both creator and updater with the given principal.
func NewAudit(actor Principal) Audit {
	return Audit{
		CreatedBy:      actor.UserID,
		CreatedByEmail: actor.Email,
		UpdatedBy:      actor.UserID,
		UpdatedByEmail: actor.Email,
	}
}

// Touch records actor as the last updater.
func (a *Audit) Touch(actor Principal) {
	a.UpdatedBy = actor.UserID
	a.UpdatedByEmail = actor.Email
}
