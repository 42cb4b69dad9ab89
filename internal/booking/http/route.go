package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Availability endpoints live under /properties.
	props := g.Group("/properties")
	props.Use(authMiddleware)
	{
		props.GET("/:id/booked-dates", h.BookedDates)
		props.POST("/:id/check-availability", h.CheckAvailability)
	}

	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/payment", h.Pay)
	}

	admin := g.Group("/admin/bookings")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/:id/approve", h.Approve)
		admin.POST("/:id/reject", h.Reject)
	}
}
