package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/booking"
	"github.com/stayhaven/booking-backend/internal/pkg/response"
	"github.com/stayhaven/booking-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// BookedDates handles GET /v1/properties/:id/booked-dates.
func (h *Handler) BookedDates(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	ranges, err := h.service.BookedDates(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DateRangeResponse, len(ranges))
	for i, r := range ranges {
		items[i] = NewDateRangeResponse(r)
	}
	c.JSON(http.StatusOK, BookedDatesResponse{BookedDates: items})
}

// CheckAvailability handles POST /v1/properties/:id/check-availability.
func (h *Handler) CheckAvailability(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CheckAvailabilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	avail, err := h.service.CheckAvailability(c.Request.Context(), propertyID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := AvailabilityResponse{Available: avail.Available}
	if avail.Conflict != nil {
		r := NewDateRangeResponse(*avail.Conflict)
		resp.ExistingBooking = &r
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/bookings.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		PropertyID:       body.PropertyID,
		CustomerID:       p.ID,
		StartDate:        start,
		EndDate:          end,
		Guests:           body.Guests,
		Price:            body.Price,
		Subtotal:         body.Subtotal,
		CleaningFee:      body.CleaningFee,
		ServiceFee:       body.ServiceFee,
		SecurityDeposit:  body.SecurityDeposit,
		ClientBookingRef: body.ClientBookingRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// List handles GET /v1/bookings. Results are scoped by role: customers
// see their own bookings, property managers the bookings of their
// properties, admins everything.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter := booking.Filter{
		PropertyID: req.PropertyID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
	}

	switch user.Role(p.Role) {
	case user.RoleCustomer:
		filter.CustomerID = p.ID
	case user.RolePropertyManager:
		filter.ManagerID = p.ID
	default:
		// Admins may filter by an arbitrary customer.
		filter.CustomerID = req.CustomerID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get handles GET /v1/bookings/:id. The path segment is either the
// booking's UUID or its human-readable reference (e.g. from a
// confirmation email).
func (h *Handler) Get(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	key := c.Param("id")

	var b *booking.Booking
	var err error
	if _, uuidErr := uuid.Parse(key); uuidErr == nil {
		b, err = h.service.GetByID(c.Request.Context(), key, p)
	} else {
		b, err = h.service.GetByRef(c.Request.Context(), key, p)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	payments, err := h.service.Payments(c.Request.Context(), b.ID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail := BookingDetailResponse{Booking: NewBookingResponse(b)}
	for _, pay := range payments {
		detail.Payments = append(detail.Payments, NewPaymentResponse(pay))
	}
	c.JSON(http.StatusOK, detail)
}

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// The reason is optional, and so is the body itself.
	var body CancelBookingBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, p, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": NewBookingResponse(b),
		"message": "Booking cancelled successfully. A refund will be processed within 3-5 business days.",
	})
}

// Pay handles POST /v1/bookings/:id/payment.
func (h *Handler) Pay(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body PayBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ConfirmByPayment(c.Request.Context(), id, p, body.Amount, body.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, PayBookingResponse{
		Booking: NewBookingResponse(result.Booking),
		Payment: NewPaymentResponse(result.Payment),
	})
}

// Approve handles POST /v1/admin/bookings/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.ConfirmByAdmin(c.Request.Context(), id, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Reject handles POST /v1/admin/bookings/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body RejectBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), id, p, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
