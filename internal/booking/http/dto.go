package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayhaven/booking-backend/internal/booking"
	"github.com/stayhaven/booking-backend/internal/payment"
	"github.com/stayhaven/booking-backend/internal/pkg/request"
)

// parseDate parses a calendar date in YYYY-MM-DD form as UTC midnight.
func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED REJECTED"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=start_date end_date created_at status"`
}

// CreateBookingBody is the payload for POST /v1/bookings.
type CreateBookingBody struct {
	PropertyID       string          `json:"property_id" binding:"required,uuid"`
	StartDate        string          `json:"start_date" binding:"required"`
	EndDate          string          `json:"end_date" binding:"required"`
	Guests           int             `json:"guests" binding:"required,min=1"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	CleaningFee      decimal.Decimal `json:"cleaning_fee"`
	ServiceFee       decimal.Decimal `json:"service_fee"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit"`
	ClientBookingRef string          `json:"client_booking_ref"`
}

// CheckAvailabilityBody is the payload for POST /v1/properties/:id/check-availability.
type CheckAvailabilityBody struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// CancelBookingBody is the payload for POST /v1/bookings/:id/cancel.
type CancelBookingBody struct {
	Reason string `json:"reason"`
}

// RejectBookingBody is the payload for POST /v1/admin/bookings/:id/reject.
type RejectBookingBody struct {
	Reason string `json:"reason" binding:"required"`
}

// PayBookingBody is the payload for POST /v1/bookings/:id/payment.
type PayBookingBody struct {
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	BookingRef   string `json:"booking_ref"`
	PropertyID   string `json:"property_id"`
	PropertyName string `json:"property_name,omitempty"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name,omitempty"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Guests    int    `json:"guests"`

	Price           decimal.Decimal `json:"price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	CleaningFee     decimal.Decimal `json:"cleaning_fee"`
	ServiceFee      decimal.Decimal `json:"service_fee"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		BookingRef:         b.BookingRef,
		PropertyID:         b.PropertyID,
		PropertyName:       b.PropertyName,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		StartDate:          b.StartDate.Format(time.DateOnly),
		EndDate:            b.EndDate.Format(time.DateOnly),
		Status:             string(b.EffectiveStatus(time.Now())),
		Guests:             b.Guests,
		Price:              b.Price,
		Subtotal:           b.Subtotal,
		CleaningFee:        b.CleaningFee,
		ServiceFee:         b.ServiceFee,
		SecurityDeposit:    b.SecurityDeposit,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		RejectedAt:         b.RejectedAt,
		RejectionReason:    b.RejectionReason,
		ConfirmedAt:        b.ConfirmedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// DateRangeResponse is a half-open booked range. The end date is the
// checkout day and is itself bookable.
type DateRangeResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func NewDateRangeResponse(r booking.DateRange) DateRangeResponse {
	return DateRangeResponse{
		StartDate: r.Start.Format(time.DateOnly),
		EndDate:   r.End.Format(time.DateOnly),
	}
}

// AvailabilityResponse is the result of a check-availability call.
type AvailabilityResponse struct {
	Available       bool               `json:"available"`
	ExistingBooking *DateRangeResponse `json:"existing_booking,omitempty"`
}

// BookedDatesResponse lists the future booked ranges for a property.
type BookedDatesResponse struct {
	BookedDates []DateRangeResponse `json:"booked_dates"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

// BookingDetailResponse is the single-booking view including its
// payment history.
type BookingDetailResponse struct {
	Booking  BookingResponse   `json:"booking"`
	Payments []PaymentResponse `json:"payments,omitempty"`
}

// PayBookingResponse pairs the confirmed booking with its payment record.
type PayBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment PaymentResponse `json:"payment"`
}
