package user

import (
	"net/http"
	"time"

	"github.com/stayhaven/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "not_found", "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email_already_used", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "inactive_user", "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "validation_error", "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "validation_error", "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "validation_error", "invalid role")
)

// Role is the platform-level role of a user.
type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RolePropertyManager Role = "PROPERTY_MANAGER"
	RoleAdmin           Role = "ADMIN"
	RoleSuperAdmin      Role = "SUPER_ADMIN"
)

// IsAdmin reports whether the role carries platform admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ValidRoles lists the roles accepted at registration and by admin updates.
var ValidRoles = []Role{RoleCustomer, RolePropertyManager, RoleAdmin, RoleSuperAdmin}

// User represents an account on the platform.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// FullName returns the account's display name.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Role     string
	IsActive *bool // Pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
