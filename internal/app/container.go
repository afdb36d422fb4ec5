package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/salon-booking-backend/internal/api"
	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
	"github.com/nekogravitycat/salon-booking-backend/internal/availability"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/catalog"
	"github.com/nekogravitycat/salon-booking-backend/internal/client"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	notifierHttp "github.com/nekogravitycat/salon-booking-backend/internal/notifier/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/httpx"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
	"github.com/nekogravitycat/salon-booking-backend/internal/user"
	"github.com/redis/go-redis/v9"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *slog.Logger
	DBPool       *pgxpool.Pool
	Storage      storage.Storage
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	// Optional infrastructure; nil disables the feature.
	Redis       *redis.Client
	KafkaWriter notifier.MessageWriter

	RateLimitPerMinute int
	StaffCacheSize     int
	EventsBufferSize   int
	ReadyChecks        []httpx.ReadyCheck
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Bus        *notifier.Bus
	Checker    *availability.Checker
	Events     *notifierHttp.EventsHandler

	detach []func()
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	bus := notifier.NewBus(logger)
	c := &Container{JWTManager: jwtManager, Bus: bus}

	if cfg.KafkaWriter != nil {
		c.detach = append(c.detach, notifier.NewKafkaForwarder(cfg.KafkaWriter, logger).Attach(bus))
	}

	// User Module
	userService := user.NewService(user.NewPgxRepository(cfg.DBPool), passwordHasher, logger)

	// Location Module
	locService := location.NewService(location.NewPgxRepository(cfg.DBPool))

	// Catalog Module
	catalogService := catalog.NewService(catalog.NewPgxRepository(cfg.DBPool))

	// Client Module
	clientService := client.NewService(client.NewPgxRepository(cfg.DBPool))

	// Staff Module
	staffService := staff.NewService(staff.NewPgxRepository(cfg.DBPool), cfg.Storage, bus, logger)

	// Blocked Time Module
	blockedService := blockedtime.NewService(blockedtime.NewPgxRepository(cfg.DBPool), staffService, bus)

	// Appointment Module
	apptService := appointment.NewService(appointment.NewPgxRepository(cfg.DBPool), appointment.Deps{
		Staff:     staffService,
		Clients:   clientService,
		Offerings: catalogService,
		Locations: locService,
		Events:    bus,
	})

	// Availability
	staffCache, err := availability.NewStaffCache(staffService, cfg.StaffCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init availability: %w", err)
	}
	c.detach = append(c.detach, staffCache.Attach(bus))
	c.Checker = availability.NewChecker(staffCache, apptService, blockedService, locService, logger)

	c.Events = notifierHttp.NewHandler(bus, cfg.EventsBufferSize, logger)

	var limiter *httpx.RedisRateLimiter
	if cfg.Redis != nil {
		limiter = httpx.NewRedisRateLimiter(cfg.Redis, cfg.RateLimitPerMinute, time.Minute, "salon:rl", logger)
	}

	// Router
	c.Router = api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             logger,
		JWTManager:         jwtManager,
		RateLimiter:        limiter,
		ReadyChecks:        cfg.ReadyChecks,
		UserService:        userService,
		LocationService:    locService,
		CatalogService:     catalogService,
		ClientService:      clientService,
		StaffService:       staffService,
		AppointmentService: apptService,
		BlockedTimeService: blockedService,
		Availability:       c.Checker,
		Events:             c.Events,
	})

	return c, nil
}

// Close ends open event streams and unsubscribes the background listeners
// attached to the bus.
func (c *Container) Close() {
	c.Events.Close()
	for _, fn := range c.detach {
		fn()
	}
	c.detach = nil
}
