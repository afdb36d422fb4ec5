package api

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	appointmentHttp "github.com/nekogravitycat/salon-booking-backend/internal/appointment/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
	availabilityHttp "github.com/nekogravitycat/salon-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	blockedtimeHttp "github.com/nekogravitycat/salon-booking-backend/internal/blockedtime/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/catalog"
	catalogHttp "github.com/nekogravitycat/salon-booking-backend/internal/catalog/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/client"
	clientHttp "github.com/nekogravitycat/salon-booking-backend/internal/client/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	locationHttp "github.com/nekogravitycat/salon-booking-backend/internal/location/http"
	notifierHttp "github.com/nekogravitycat/salon-booking-backend/internal/notifier/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/httpx"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
	staffHttp "github.com/nekogravitycat/salon-booking-backend/internal/staff/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/salon-booking-backend/internal/user/http"
)

// Config carries everything the router needs to mount the API.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *slog.Logger
	JWTManager   *auth.JWTManager
	RateLimiter  *httpx.RedisRateLimiter // nil disables rate limiting
	ReadyChecks  []httpx.ReadyCheck

	UserService        user.Service
	LocationService    location.Service
	CatalogService     catalog.Service
	ClientService      client.Service
	StaffService       staff.Service
	AppointmentService appointment.Service
	BlockedTimeService blockedtime.Service
	Availability       availabilityHttp.Checker
	Events             *notifierHttp.EventsHandler
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, access log, CORS,
// auth, rate limiting) and registering routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: propagates or assigns X-Request-Id.
	// - AccessLog: one structured line per request.
	// - Recovery: turns panics into a 500 instead of crashing the server.
	r.Use(httpx.RequestID(), httpx.AccessLog(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = corsOrigins(cfg.IsProduction, cfg.ProdOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", httpx.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{httpx.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	httpx.RegisterHealth(r, cfg.ReadyChecks...)

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHttp.NewHandler(cfg.UserService, cfg.JWTManager), authMiddleware,
			rateLimit(cfg.RateLimiter, "auth")...)
		locationHttp.RegisterRoutes(v1, locationHttp.NewHandler(cfg.LocationService), authMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHttp.NewHandler(cfg.CatalogService), authMiddleware)
		clientHttp.RegisterRoutes(v1, clientHttp.NewHandler(cfg.ClientService), authMiddleware)
		staffHttp.RegisterRoutes(v1, staffHttp.NewHandler(cfg.StaffService), authMiddleware)
		appointmentHttp.RegisterRoutes(v1, appointmentHttp.NewHandler(cfg.AppointmentService), authMiddleware)
		blockedtimeHttp.RegisterRoutes(v1, blockedtimeHttp.NewHandler(cfg.BlockedTimeService), authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHttp.NewHandler(cfg.Availability), authMiddleware,
			rateLimit(cfg.RateLimiter, "availability")...)
		notifierHttp.RegisterRoutes(v1, cfg.Events, authMiddleware)
	}

	return r
}
