package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *EventsHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/events")

	group.Use(authMiddleware)
	{
		group.GET("", h.Stream) // Server-sent change notifications
	}
}
