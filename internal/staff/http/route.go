package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/staff")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/avatar", h.ServeAvatar)

		manager := group.Group("", auth.RequireRole(auth.RoleManager))
		manager.POST("", h.Create)
		manager.PATCH("/:id", h.Update)
		manager.POST("/:id/avatar", h.UploadAvatar)
		manager.DELETE("/:id", auth.RequireRole(auth.RoleAdmin), h.Delete)
	}
}
