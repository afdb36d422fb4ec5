package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/services")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		manager := group.Group("", auth.RequireRole(auth.RoleManager))
		manager.POST("", h.Create)
		manager.PATCH("/:id", h.Update)
		manager.DELETE("/:id", h.Delete)
	}
}
