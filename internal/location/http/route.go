package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *LocationHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/locations")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List locations
		group.GET("/:id", h.Get) // Get location details

		group.POST("", auth.RequireRole(auth.RoleAdmin), h.Create)        // Create location
		group.PATCH("/:id", auth.RequireRole(auth.RoleManager), h.Update) // Update location
		group.DELETE("/:id", auth.RequireRole(auth.RoleAdmin), h.Delete)  // Delete location
	}
}
