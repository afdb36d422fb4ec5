package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the read-only availability endpoints. Extra
// middleware (rate limiting) runs after authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, extra ...gin.HandlerFunc) {
	group := g.Group("/availability")

	group.Use(authMiddleware)
	group.Use(extra...)
	{
		group.GET("/check", h.Check)
		group.GET("/slots", h.Slots)
	}
}
