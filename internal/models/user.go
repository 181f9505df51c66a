package models

import (
	"time"
)

// Role values assignable to a user. Role is re-read from the database on every
// admin-gated request, so changing it takes effect immediately.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered student or administrator.
type User struct {
	BaseModel
	Name          string  `json:"name"`
	Email         string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string  `json:"-"`
	EmailVerified bool    `json:"email_verified"`
	Role          string  `gorm:"default:user" json:"role"`
	Orders        []Order `json:"orders,omitempty"`
}

// EmailVerification keeps track of signup verification codes sent to users.
type EmailVerification struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}

// PasswordResetToken ties a reset code to an opaque token handed to the client.
type PasswordResetToken struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	Token     string     `gorm:"uniqueIndex" json:"token"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}
