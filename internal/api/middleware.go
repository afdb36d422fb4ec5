package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/httpx"
)

// rateLimit returns the limiter middleware for scope, or nothing when rate
// limiting is disabled, so it can be spread into a variadic route argument.
func rateLimit(limiter *httpx.RedisRateLimiter, scope string) []gin.HandlerFunc {
	if limiter == nil {
		return nil
	}
	return []gin.HandlerFunc{limiter.Middleware(scope)}
}

// corsOrigins lists the origins browsers may call the API from.
func corsOrigins(isProduction bool, prodOrigins []string) []string {
	if isProduction {
		return prodOrigins
	}
	return []string{
		"http://localhost:3000", // Front desk UI (dev)
		"http://localhost:5173",
		"http://localhost:8081", // Swagger
	}
}
