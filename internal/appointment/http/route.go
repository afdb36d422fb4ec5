package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/appointments")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/status", h.ChangeStatus)
		group.DELETE("/:id", auth.RequireRole(auth.RoleManager), h.Delete)
	}
}
