package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleStaff  UserRole = "staff"
	UserRoleClient UserRole = "client"
)

// CanManageClients reports whether the role may be assigned as an account manager.
func (r UserRole) CanManageClients() bool {
	return r == UserRoleAdmin || r == UserRoleStaff
}

// MaxFailedLogins is the lockout threshold. There is no timed unlock; the
// counter resets on a successful login or when an admin issues new credentials.
const MaxFailedLogins = 5

// User represents an identity row
type User struct {
	ID                  uint      `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"fullName"`
	PasswordHash        string    `json:"-"`
	Role                UserRole  `json:"role"`
	IsActive            bool      `json:"isActive"`
	IsVerified          bool      `json:"isVerified"`
	FailedLoginAttempts int       `json:"-"`
	LastLogin           null.Time `json:"lastLogin,omitempty"`
	PasswordChangedAt   null.Time `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// IsLocked reports whether the failed-login counter has hit the threshold.
func (u *User) IsLocked() bool {
	return u.FailedLoginAttempts >= MaxFailedLogins
}

// NormalizeEmail lower-cases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginInput represents form-encoded login credentials
type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// CreateUserInput represents input for staff/admin account creation
type CreateUserInput struct {
	Email    string   `json:"email" binding:"required,email"`
	FullName string   `json:"fullName" binding:"required,min=2,max=255"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role" binding:"required,oneof=admin staff client"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	User         *User  `json:"user"`
}
