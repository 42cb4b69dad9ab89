package property

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayhaven/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "not_found", "property not found")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "validation_error", "name cannot be empty")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "validation_error", "price per night must be positive")
	ErrInvalidGuests = apperror.New(http.StatusBadRequest, "validation_error", "max guests must be at least 1")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "validation_error", "invalid property status")
	ErrNotOwner      = apperror.New(http.StatusForbidden, "forbidden", "property belongs to another manager")
)

// Status is the moderation state of a property listing.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusRejected Status = "REJECTED"
	StatusInactive Status = "INACTIVE"
)

// Property represents a rentable listing managed by a property manager.
type Property struct {
	ID            string
	ManagerID     string
	ManagerName   string
	Name          string
	Location      string
	PropertyType  string
	PricePerNight decimal.Decimal
	MaxGuests     int
	Photos        []string
	Amenities     []string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing properties.
type Filter struct {
	ManagerID    string
	Status       string
	Location     string
	PropertyType string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
