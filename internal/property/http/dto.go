package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayhaven/booking-backend/internal/property"
)

type CreatePropertyBody struct {
	Name          string          `json:"name" binding:"required"`
	Location      string          `json:"location" binding:"required"`
	PropertyType  string          `json:"property_type" binding:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	MaxGuests     int             `json:"max_guests" binding:"required"`
	Photos        []string        `json:"photos"`
	Amenities     []string        `json:"amenities"`
}

type UpdatePropertyBody struct {
	Name          *string          `json:"name"`
	Location      *string          `json:"location"`
	PropertyType  *string          `json:"property_type"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	MaxGuests     *int             `json:"max_guests"`
	Photos        []string         `json:"photos"`
	Amenities     []string         `json:"amenities"`
}

type ListPropertiesQuery struct {
	Status       string `form:"status"`
	Location     string `form:"location"`
	PropertyType string `form:"property_type"`
	ManagerID    string `form:"manager_id"`
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"page_size,default=20"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=name location price_per_night max_guests status created_at"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type PropertyResponse struct {
	ID            string          `json:"id"`
	ManagerID     string          `json:"manager_id"`
	ManagerName   string          `json:"manager_name,omitempty"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	PropertyType  string          `json:"property_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	MaxGuests     int             `json:"max_guests"`
	Photos        []string        `json:"photos"`
	Amenities     []string        `json:"amenities"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		ManagerID:     p.ManagerID,
		ManagerName:   p.ManagerName,
		Name:          p.Name,
		Location:      p.Location,
		PropertyType:  p.PropertyType,
		PricePerNight: p.PricePerNight,
		MaxGuests:     p.MaxGuests,
		Photos:        p.Photos,
		Amenities:     p.Amenities,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
