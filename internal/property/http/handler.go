package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/pkg/response"
	"github.com/stayhaven/booking-backend/internal/property"
	"github.com/stayhaven/booking-backend/internal/user"
)

type Handler struct {
	service property.Service
}

func NewHandler(service property.Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /v1/properties.
func (h *Handler) List(c *gin.Context) {
	var query ListPropertiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := property.Filter{
		ManagerID:    query.ManagerID,
		Status:       query.Status,
		Location:     query.Location,
		PropertyType: query.PropertyType,
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}

	// Unauthenticated and customer listings only ever see verified
	// properties; managers see their own regardless of status.
	p, authed := auth.GetPrincipal(c)
	switch {
	case !authed, p.Role == string(user.RoleCustomer):
		filter.Status = string(property.StatusActive)
	case p.Role == string(user.RolePropertyManager):
		filter.ManagerID = p.ID
	}

	properties, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PropertyResponse, len(properties))
	for i, prop := range properties {
		items[i] = NewPropertyResponse(prop)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

// Get handles GET /v1/properties/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

// Create handles POST /v1/properties.
func (h *Handler) Create(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	if principal.Role != string(user.RolePropertyManager) && !user.Role(principal.Role).IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only property managers can create listings"})
		return
	}

	var body CreatePropertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), property.CreateRequest{
		ManagerID:     principal.ID,
		Name:          body.Name,
		Location:      body.Location,
		PropertyType:  body.PropertyType,
		PricePerNight: body.PricePerNight,
		MaxGuests:     body.MaxGuests,
		Photos:        body.Photos,
		Amenities:     body.Amenities,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewPropertyResponse(p))
}

// Update handles PATCH /v1/properties/:id.
func (h *Handler) Update(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePropertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	isAdmin := user.Role(principal.Role).IsAdmin()
	p, err := h.service.Update(c.Request.Context(), id, property.UpdateRequest{
		Name:          body.Name,
		Location:      body.Location,
		PropertyType:  body.PropertyType,
		PricePerNight: body.PricePerNight,
		MaxGuests:     body.MaxGuests,
		Photos:        body.Photos,
		Amenities:     body.Amenities,
	}, principal.ID, isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

// Delete handles DELETE /v1/properties/:id.
func (h *Handler) Delete(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := user.Role(principal.Role).IsAdmin()
	if err := h.service.Delete(c.Request.Context(), id, principal.ID, isAdmin); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
