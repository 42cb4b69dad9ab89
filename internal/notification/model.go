package notification

import (
	"net/http"
	"time"

	"github.com/stayhaven/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "not_found", "notification not found")
)

// Type identifies the booking lifecycle event a notification reports.
type Type string

const (
	TypeBookingCreated   Type = "BOOKING_CREATED"
	TypeBookingConfirmed Type = "BOOKING_CONFIRMED"
	TypeBookingRejected  Type = "BOOKING_REJECTED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
)

// Notification is an in-app message produced by booking lifecycle
// transitions. Rendering and delivery happen outside this service.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	Data      map[string]any
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
