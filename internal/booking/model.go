package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayhaven/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound                 = apperror.New(http.StatusNotFound, "not_found", "booking not found")
	ErrPropertyNotFound         = apperror.New(http.StatusNotFound, "not_found", "property not found")
	ErrDateConflict             = apperror.New(http.StatusConflict, "booking_conflict", "property is no longer available for these dates")
	ErrInvalidDateRange         = apperror.New(http.StatusBadRequest, "validation_error", "start date must be before end date")
	ErrInvalidGuests            = apperror.New(http.StatusBadRequest, "validation_error", "guests must be at least 1")
	ErrTooManyGuests            = apperror.New(http.StatusBadRequest, "validation_error", "guests exceed the property capacity")
	ErrInvalidPrice             = apperror.New(http.StatusBadRequest, "validation_error", "price must be positive and fees non-negative")
	ErrReasonRequired           = apperror.New(http.StatusBadRequest, "reason_required", "a reason is required")
	ErrAmountMismatch           = apperror.New(http.StatusBadRequest, "amount_mismatch", "payment amount does not match the booking price")
	ErrNotEligible              = apperror.New(http.StatusBadRequest, "booking_not_eligible", "booking is not eligible for payment")
	ErrNotCancellable           = apperror.New(http.StatusBadRequest, "not_cancellable", "this booking cannot be cancelled")
	ErrCancellationWindowClosed = apperror.New(http.StatusBadRequest, "cancellation_window_closed", "bookings cannot be cancelled within 24 hours of check-in")
	ErrInvalidTransition        = apperror.New(http.StatusBadRequest, "invalid_transition", "booking status does not allow this transition")
	ErrPermissionDenied         = apperror.New(http.StatusForbidden, "forbidden", "permission denied")
)

// Status is the lifecycle state of a booking.
//
// PENDING, CONFIRMED, CANCELLED and REJECTED are persisted.
// COMPLETED is derived: a CONFIRMED booking whose end date has passed.
// It is never written to storage.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRejected || s == StatusCompleted
}

// Blocks reports whether a booking in this status makes its date range
// unavailable to others. Cancelled and rejected bookings release their dates.
func (s Status) Blocks() bool {
	return s != StatusCancelled && s != StatusRejected
}

// Booking is a reservation of a property for a half-open date range
// [StartDate, EndDate) by a customer.
type Booking struct {
	ID         string
	BookingRef string
	PropertyID string
	CustomerID string

	// Denormalized for responses and notification messages.
	PropertyName      string
	PropertyManagerID string
	CustomerName      string

	StartDate time.Time // calendar date, UTC midnight
	EndDate   time.Time // calendar date, UTC midnight, exclusive (checkout day)
	Status    Status
	Guests    int

	Price           decimal.Decimal
	Subtotal        decimal.Decimal
	CleaningFee     decimal.Decimal
	ServiceFee      decimal.Decimal
	SecurityDeposit decimal.Decimal

	CancelledAt        *time.Time
	CancellationReason string
	RejectedAt         *time.Time
	RejectedBy         string
	RejectionReason    string
	ConfirmedAt        *time.Time
	ConfirmedBy        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveStatus returns the status as seen by callers at the given
// time: a CONFIRMED booking whose end date has passed reads as COMPLETED.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusConfirmed && b.EndDate.Before(now) {
		return StatusCompleted
	}
	return b.Status
}

// DateRange is a half-open [Start, End) calendar range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RangesOverlap reports whether two half-open date ranges share at
// least one day: aStart < bEnd AND aEnd > bStart. Ranges that merely
// touch (one's checkout is the other's check-in) do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CustomerID string
	PropertyID string
	ManagerID  string // bookings of properties managed by this user
	Status     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
