package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// errRefTaken signals a booking_ref unique violation; the service
// regenerates the reference and retries once.
var errRefTaken = errors.New("booking reference already taken")

type Repository interface {
	// Create persists a new booking. The bookings table carries an
	// exclusion constraint on (property_id, daterange) for blocking
	// statuses, so a concurrent overlapping insert fails here with
	// ErrDateConflict even after the service-level availability check.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByRef(ctx context.Context, ref string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus writes the status and its transition metadata,
	// guarded by the expected previous status. A concurrent transition
	// makes the guard miss and the update reports ErrInvalidTransition.
	UpdateStatus(ctx context.Context, b *Booking, from Status) error

	// FirstOverlapping returns the blocking booking with the lowest
	// start date that overlaps [start, end) for the property, or nil.
	FirstOverlapping(ctx context.Context, propertyID string, start, end time.Time, excludeID string) (*Booking, error)

	// BookedRanges lists the date ranges of blocking bookings for the
	// property from the given date onward.
	BookedRanges(ctx context.Context, propertyID string, from time.Time) ([]DateRange, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.booking_ref", "b.property_id", "b.customer_id",
	"p.name", "p.manager_id", "concat_ws(' ', u.first_name, u.last_name)",
	"b.start_date", "b.end_date", "b.status", "b.guests",
	"b.price", "b.subtotal", "b.cleaning_fee", "b.service_fee", "b.security_deposit",
	"b.cancelled_at", "b.cancellation_reason",
	"b.rejected_at", "b.rejected_by", "b.rejection_reason",
	"b.confirmed_at", "b.confirmed_by",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.BookingRef, &b.PropertyID, &b.CustomerID,
		&b.PropertyName, &b.PropertyManagerID, &b.CustomerName,
		&b.StartDate, &b.EndDate, &b.Status, &b.Guests,
		&b.Price, &b.Subtotal, &b.CleaningFee, &b.ServiceFee, &b.SecurityDeposit,
		&b.CancelledAt, &b.CancellationReason,
		&b.RejectedAt, &b.RejectedBy, &b.RejectionReason,
		&b.ConfirmedAt, &b.ConfirmedBy,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("booking_ref", "property_id", "customer_id", "start_date", "end_date",
			"status", "guests", "price", "subtotal", "cleaning_fee", "service_fee", "security_deposit").
		Values(b.BookingRef, b.PropertyID, b.CustomerID, b.StartDate, b.EndDate,
			b.Status, b.Guests, b.Price, b.Subtotal, b.CleaningFee, b.ServiceFee, b.SecurityDeposit).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch {
			case e.Code == pgerrcode.ExclusionViolation:
				return ErrDateConflict
			case e.Code == pgerrcode.UniqueViolation && strings.Contains(e.ConstraintName, "booking_ref"):
				return errRefTaken
			}
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.properties p ON b.property_id = p.id").
		Join("public.users u ON b.customer_id = u.id").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"b.id": id})
}

func (r *pgxRepository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"b.booking_ref": ref})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).
		From("public.bookings b").
		Join("public.properties p ON b.property_id = p.id").
		Join("public.users u ON b.customer_id = u.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.PropertyID != "" {
		query = query.Where(squirrel.Eq{"b.property_id": filter.PropertyID})
	}
	if filter.ManagerID != "" {
		query = query.Where(squirrel.Eq{"p.manager_id": filter.ManagerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Sorting
	orderBy := "b.created_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking, from Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("cancelled_at", b.CancelledAt).
		Set("cancellation_reason", b.CancellationReason).
		Set("rejected_at", b.RejectedAt).
		Set("rejected_by", b.RejectedBy).
		Set("rejection_reason", b.RejectionReason).
		Set("confirmed_at", b.ConfirmedAt).
		Set("confirmed_by", b.ConfirmedBy).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The booking moved out of the expected status concurrently
		// (or never existed). Either way the transition is invalid now.
		return ErrInvalidTransition
	}
	return nil
}

func (r *pgxRepository) FirstOverlapping(ctx context.Context, propertyID string, start, end time.Time, excludeID string) (*Booking, error) {
	// Overlap under half-open semantics:
	// existing.start_date < end AND existing.end_date > start,
	// considering only statuses that block the dates.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.booking_ref", "b.start_date", "b.end_date", "b.status",
	).
		From("public.bookings b").
		Where(squirrel.Eq{"b.property_id": propertyID}).
		Where(squirrel.NotEq{"b.status": []string{string(StatusCancelled), string(StatusRejected)}}).
		Where(squirrel.Lt{"b.start_date": end}).
		Where(squirrel.Gt{"b.end_date": start}).
		OrderBy("b.start_date ASC", "b.id ASC").
		Limit(1)

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	var b Booking
	err = r.pool.QueryRow(ctx, sql, args...).
		Scan(&b.ID, &b.BookingRef, &b.StartDate, &b.EndDate, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("check overlap failed: %w", err)
	}
	b.PropertyID = propertyID
	return &b, nil
}

func (r *pgxRepository) BookedRanges(ctx context.Context, propertyID string, from time.Time) ([]DateRange, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("b.start_date", "b.end_date").
		From("public.bookings b").
		Where(squirrel.Eq{"b.property_id": propertyID}).
		Where(squirrel.NotEq{"b.status": []string{string(StatusCancelled), string(StatusRejected)}}).
		Where(squirrel.GtOrEq{"b.start_date": from}).
		OrderBy("b.start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked ranges query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list booked ranges failed: %w", err)
	}
	defer rows.Close()

	var ranges []DateRange
	for rows.Next() {
		var dr DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, fmt.Errorf("scan booked range failed: %w", err)
		}
		ranges = append(ranges, dr)
	}
	return ranges, nil
}
