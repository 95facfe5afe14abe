package model

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of roles an account may hold
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// IsValid reports whether the role is one of the allowed values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ErrUnknownRole is returned by ParseRole for values outside the allowed set
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a raw string into a Role, rejecting unknown values
// rather than coercing them to a default.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return role, nil
}

// Status is the account activity state; only active accounts may authenticate
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsValid reports whether the status is one of the allowed values
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

// Account represents an identity record in the system
type Account struct {
	ID           int64     `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	Deleted      bool      `json:"-"`
	DeleteCode   *string   `json:"-"` // Random marker stamped on soft delete
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAccountRequest is used for creating a new account
type CreateAccountRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required"`
}

// UpdateAccountRequest is used for partial updates of an account.
// Password, when present, is the raw credential and is always rehashed
// before it reaches the store.
type UpdateAccountRequest struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Role        *string `json:"role,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// LoginRequest carries the credential pair presented at login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token presented for exchange
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}
