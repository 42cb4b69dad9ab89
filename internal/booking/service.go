package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/notification"
	"github.com/stayhaven/booking-backend/internal/payment"
	"github.com/stayhaven/booking-backend/internal/property"
)

// PropertyDirectory is the slice of the property service the booking
// core depends on.
type PropertyDirectory interface {
	GetByID(ctx context.Context, id string) (*property.Property, error)
}

// PaymentStore persists payment records created on booking payment
// and lists them back for booking detail views.
type PaymentStore interface {
	Create(ctx context.Context, p *payment.Payment) error
	ListByBooking(ctx context.Context, bookingID string) ([]*payment.Payment, error)
}

// Notifier accepts notification create requests. Delivery is external;
// failures here are logged and swallowed, never rolled back.
type Notifier interface {
	Create(ctx context.Context, req notification.CreateRequest) (*notification.Notification, error)
}

// CreateRequest carries the data needed to create a booking.
type CreateRequest struct {
	PropertyID       string
	CustomerID       string
	StartDate        time.Time
	EndDate          time.Time
	Guests           int
	Price            decimal.Decimal
	Subtotal         decimal.Decimal
	CleaningFee      decimal.Decimal
	ServiceFee       decimal.Decimal
	SecurityDeposit  decimal.Decimal
	ClientBookingRef string
}

// Availability is the result of an availability check.
type Availability struct {
	Available bool
	Conflict  *DateRange
}

// PaymentResult pairs a confirmed booking with its payment record.
type PaymentResult struct {
	Booking *Booking
	Payment *payment.Payment
}

type Service interface {
	CheckAvailability(ctx context.Context, propertyID string, start, end time.Time) (*Availability, error)
	BookedDates(ctx context.Context, propertyID string) ([]DateRange, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	ConfirmByPayment(ctx context.Context, bookingID string, p auth.Principal, amount decimal.Decimal, method string) (*PaymentResult, error)
	ConfirmByAdmin(ctx context.Context, bookingID string, p auth.Principal) (*Booking, error)
	Reject(ctx context.Context, bookingID string, p auth.Principal, reason string) (*Booking, error)
	Cancel(ctx context.Context, bookingID string, p auth.Principal, reason string) (*Booking, error)
	GetByID(ctx context.Context, id string, p auth.Principal) (*Booking, error)
	GetByRef(ctx context.Context, ref string, p auth.Principal) (*Booking, error)
	Payments(ctx context.Context, bookingID string, p auth.Principal) ([]*payment.Payment, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

// Config holds booking policy settings.
type Config struct {
	CancellationCutoffHours int
	RefPrefix               string
}

type service struct {
	repo       Repository
	properties PropertyDirectory
	payments   PaymentStore
	notifier   Notifier
	logger     *zap.Logger
	cfg        Config

	now func() time.Time
}

func NewService(repo Repository, properties PropertyDirectory, payments PaymentStore, notifier Notifier, logger *zap.Logger, cfg Config) Service {
	if cfg.CancellationCutoffHours <= 0 {
		cfg.CancellationCutoffHours = 24
	}
	if cfg.RefPrefix == "" {
		cfg.RefPrefix = "BK"
	}
	return &service{
		repo:       repo,
		properties: properties,
		payments:   payments,
		notifier:   notifier,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *service) CheckAvailability(ctx context.Context, propertyID string, start, end time.Time) (*Availability, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	conflict, err := s.repo.FirstOverlapping(ctx, propertyID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &Availability{Available: true}, nil
	}
	return &Availability{
		Available: false,
		Conflict:  &DateRange{Start: conflict.StartDate, End: conflict.EndDate},
	}, nil
}

func (s *service) BookedDates(ctx context.Context, propertyID string) ([]DateRange, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, ErrPropertyNotFound
	}

	today := s.today()
	return s.repo.BookedRanges(ctx, propertyID, today)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Guests < 1 {
		return nil, ErrInvalidGuests
	}
	// Price is caller-supplied and intentionally not recomputed from the
	// breakdown; only signs are validated here.
	if !req.Price.IsPositive() ||
		req.Subtotal.IsNegative() || req.CleaningFee.IsNegative() ||
		req.ServiceFee.IsNegative() || req.SecurityDeposit.IsNegative() {
		return nil, ErrInvalidPrice
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}
	if req.Guests > prop.MaxGuests {
		return nil, ErrTooManyGuests
	}

	// Re-check availability right before the insert. The storage-level
	// exclusion constraint still backs this up under concurrent writes.
	conflict, err := s.repo.FirstOverlapping(ctx, req.PropertyID, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrDateConflict
	}

	ref := req.ClientBookingRef
	if ref == "" {
		ref = NewReference(s.cfg.RefPrefix)
	}

	b := &Booking{
		BookingRef:        ref,
		PropertyID:        req.PropertyID,
		CustomerID:        req.CustomerID,
		PropertyName:      prop.Name,
		PropertyManagerID: prop.ManagerID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            StatusPending,
		Guests:            req.Guests,
		Price:             req.Price,
		Subtotal:          req.Subtotal,
		CleaningFee:       req.CleaningFee,
		ServiceFee:        req.ServiceFee,
		SecurityDeposit:   req.SecurityDeposit,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if err == errRefTaken {
			// Reference collision: regenerate once and retry.
			b.BookingRef = NewReference(s.cfg.RefPrefix)
			err = s.repo.Create(ctx, b)
		}
		if err != nil {
			return nil, err
		}
	}

	s.notify(ctx, prop.ManagerID, notification.TypeBookingCreated,
		"New Booking Request",
		fmt.Sprintf("A new booking request for %q is awaiting confirmation.", prop.Name),
		map[string]any{
			"bookingId":  b.ID,
			"bookingRef": b.BookingRef,
			"propertyId": b.PropertyID,
			"startDate":  b.StartDate.Format(time.DateOnly),
			"endDate":    b.EndDate.Format(time.DateOnly),
		})

	return b, nil
}

func (s *service) ConfirmByPayment(ctx context.Context, bookingID string, p auth.Principal, amount decimal.Decimal, method string) (*PaymentResult, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.CustomerID != p.ID || b.Status != StatusPending {
		return nil, ErrNotEligible
	}
	if !CanTransition(p, b, StatusConfirmed) {
		return nil, ErrPermissionDenied
	}
	if !amount.Equal(b.Price) {
		return nil, ErrAmountMismatch
	}

	// Confirm first: the compare-and-set guard is what detects a
	// concurrent cancel/reject, and no payment row may exist for a
	// booking that never left PENDING.
	now := s.now().UTC()
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	if err := s.repo.UpdateStatus(ctx, b, StatusPending); err != nil {
		return nil, err
	}

	pay := &payment.Payment{
		BookingID:     b.ID,
		Amount:        amount,
		Method:        method,
		Status:        payment.StatusCompleted,
		TransactionID: payment.NewTransactionID(),
	}
	if err := s.payments.Create(ctx, pay); err != nil {
		// Roll the confirmation back so the failed payment leaves no
		// visible state change.
		b.Status = StatusPending
		b.ConfirmedAt = nil
		if revertErr := s.repo.UpdateStatus(ctx, b, StatusConfirmed); revertErr != nil {
			s.logger.Error("failed to revert booking after payment write failure",
				zap.String("bookingId", b.ID),
				zap.Error(revertErr),
			)
		}
		return nil, err
	}

	s.notify(ctx, b.PropertyManagerID, notification.TypeBookingConfirmed,
		"Booking Paid",
		fmt.Sprintf("A booking for %q has been paid and confirmed.", b.PropertyName),
		map[string]any{
			"bookingId":     b.ID,
			"bookingRef":    b.BookingRef,
			"propertyId":    b.PropertyID,
			"amount":        amount.String(),
			"paymentMethod": method,
		})

	return &PaymentResult{Booking: b, Payment: pay}, nil
}

func (s *service) ConfirmByAdmin(ctx context.Context, bookingID string, p auth.Principal) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(p, b, StatusConfirmed) {
		return nil, ErrPermissionDenied
	}
	if b.EffectiveStatus(s.now()) != StatusPending {
		return nil, ErrInvalidTransition
	}

	now := s.now().UTC()
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	b.ConfirmedBy = p.ID
	if err := s.repo.UpdateStatus(ctx, b, StatusPending); err != nil {
		return nil, err
	}

	s.notify(ctx, b.CustomerID, notification.TypeBookingConfirmed,
		"Booking Confirmed",
		fmt.Sprintf("Your booking for %q has been confirmed.", b.PropertyName),
		map[string]any{
			"bookingId":  b.ID,
			"bookingRef": b.BookingRef,
			"propertyId": b.PropertyID,
		})
	s.notify(ctx, b.PropertyManagerID, notification.TypeBookingConfirmed,
		"New Booking Confirmed",
		fmt.Sprintf("A booking for %q has been confirmed.", b.PropertyName),
		map[string]any{
			"bookingId":  b.ID,
			"bookingRef": b.BookingRef,
			"propertyId": b.PropertyID,
			"guestName":  b.CustomerName,
		})

	return b, nil
}

func (s *service) Reject(ctx context.Context, bookingID string, p auth.Principal, reason string) (*Booking, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(p, b, StatusRejected) {
		return nil, ErrPermissionDenied
	}
	if b.EffectiveStatus(s.now()) != StatusPending {
		return nil, ErrInvalidTransition
	}

	now := s.now().UTC()
	b.Status = StatusRejected
	b.RejectedAt = &now
	b.RejectedBy = p.ID
	b.RejectionReason = reason
	if err := s.repo.UpdateStatus(ctx, b, StatusPending); err != nil {
		return nil, err
	}

	s.notify(ctx, b.CustomerID, notification.TypeBookingRejected,
		"Booking Rejected",
		fmt.Sprintf("Your booking for %q has been rejected. Reason: %s", b.PropertyName, reason),
		map[string]any{
			"bookingId":       b.ID,
			"bookingRef":      b.BookingRef,
			"propertyId":      b.PropertyID,
			"rejectionReason": reason,
		})
	s.notify(ctx, b.PropertyManagerID, notification.TypeBookingRejected,
		"Booking Rejected",
		fmt.Sprintf("A booking for %q has been rejected. Reason: %s", b.PropertyName, reason),
		map[string]any{
			"bookingId":       b.ID,
			"bookingRef":      b.BookingRef,
			"propertyId":      b.PropertyID,
			"guestName":       b.CustomerName,
			"rejectionReason": reason,
		})

	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID string, p auth.Principal, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(p, b, StatusCancelled) {
		return nil, ErrPermissionDenied
	}

	now := s.now()
	prev := b.EffectiveStatus(now)
	if prev != StatusPending && prev != StatusConfirmed {
		return nil, ErrNotCancellable
	}

	hoursUntilCheckIn := b.StartDate.Sub(now).Hours()
	if hoursUntilCheckIn < float64(s.cfg.CancellationCutoffHours) {
		return nil, ErrCancellationWindowClosed
	}

	nowUTC := now.UTC()
	b.Status = StatusCancelled
	b.CancelledAt = &nowUTC
	b.CancellationReason = reason
	if err := s.repo.UpdateStatus(ctx, b, prev); err != nil {
		return nil, err
	}

	s.notify(ctx, b.PropertyManagerID, notification.TypeBookingCancelled,
		"Booking Cancelled",
		fmt.Sprintf("A booking for %q has been cancelled by the customer.", b.PropertyName),
		map[string]any{
			"bookingId":          b.ID,
			"bookingRef":         b.BookingRef,
			"propertyId":         b.PropertyID,
			"customerName":       b.CustomerName,
			"cancellationReason": reason,
			"refundAmount":       b.Price.String(),
		})
	s.notify(ctx, b.CustomerID, notification.TypeBookingCancelled,
		"Booking Cancelled Successfully",
		fmt.Sprintf("Your booking for %q has been cancelled. A refund will be processed within 3-5 business days.", b.PropertyName),
		map[string]any{
			"bookingId":    b.ID,
			"bookingRef":   b.BookingRef,
			"propertyId":   b.PropertyID,
			"refundAmount": b.Price.String(),
		})

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, p auth.Principal) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.checkVisibility(b, p)
}

func (s *service) GetByRef(ctx context.Context, ref string, p auth.Principal) (*Booking, error) {
	b, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.checkVisibility(b, p)
}

func (s *service) Payments(ctx context.Context, bookingID string, p auth.Principal) ([]*payment.Payment, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkVisibility(b, p); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, b.ID)
}

// checkVisibility restricts a booking to the owning customer, the
// property's manager, and admins.
func (s *service) checkVisibility(b *Booking, p auth.Principal) (*Booking, error) {
	if b.CustomerID != p.ID && b.PropertyManagerID != p.ID && !isAdminRole(p.Role) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// today returns the current calendar date at UTC midnight.
func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// notify records a notification, logging and swallowing failures:
// notifications are best-effort relative to the primary transition.
func (s *service) notify(ctx context.Context, userID string, typ notification.Type, title, message string, data map[string]any) {
	_, err := s.notifier.Create(ctx, notification.CreateRequest{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		s.logger.Warn("failed to create notification",
			zap.String("userId", userID),
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}
