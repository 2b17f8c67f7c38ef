// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"voyago/internal/analytics"
	"voyago/internal/bookings"
	"voyago/internal/cancellation"
	"voyago/internal/listings"
	"voyago/internal/notifications"
	"voyago/internal/orders"
	"voyago/internal/shared/config"
	"voyago/internal/shared/constants"
	"voyago/internal/shared/database"
	"voyago/internal/shared/middleware"
	"voyago/internal/shared/txn"
	"voyago/internal/users"
	"voyago/internal/wallet"
	"voyago/pkg/cache"
	"voyago/pkg/lock"
	"voyago/pkg/logger"
	"voyago/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer

	// shared services, built once
	txr           txn.Transactor
	cacheService  cache.Service
	walletService wallet.Service
	cancellations cancellation.Service
	listings      listings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, m *metrics.Metrics, gatherer prometheus.Gatherer) *Router {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		metrics:   m,
		gatherer:  gatherer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.initSharedServices()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticated := middleware.JWTAuth(r.config.JWT.Secret)
	adminOnly := middleware.RequireAdmin()
	canManage := middleware.RequireRoles(users.RoleGuide, users.RoleAdvertiser, users.RoleAdmin)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		listings.SetupListingRoutes(api, listings.NewController(r.listings), authenticated, canManage)
		wallet.SetupWalletRoutes(api, wallet.NewController(r.walletService), authenticated, adminOnly)
		cancellation.SetupCancellationRoutes(api, cancellation.NewController(r.cancellations), authenticated)
		r.setupBookingRoutes(api, authenticated, canManage)
		r.setupOrderRoutes(api, authenticated, adminOnly)
		r.setupAnalyticsRoutes(api, authenticated, adminOnly)
	}
}

func (r *Router) initSharedServices() {
	pg := r.db.GetPostgreSQL()
	r.txr = txn.NewTransactor(pg)

	if rdb := r.db.GetRedis(); rdb != nil {
		r.cacheService = cache.NewService(rdb)
	}

	r.walletService = wallet.NewService(wallet.NewRepository(pg), r.txr, r.config.Booking.DefaultCurrency)
	r.cancellations = cancellation.NewService(cancellation.NewRepository(pg))

	r.listings = listings.NewService(listings.NewRepository(pg), r.config.Booking.DefaultCurrency)
	if r.cacheService != nil {
		r.listings.SetCacheService(r.cacheService)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "voyago-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "voyago-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"redis":       r.db.GetRedis() != nil,
			"timestamp":   time.Now(),
		})
	})

	if r.gatherer != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler(r.gatherer)))
	}
}

// setupBookingRoutes configures itinerary and activity booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, authenticated, canManage gin.HandlerFunc) {
	pg := r.db.GetPostgreSQL()
	policy := cancellation.NewPolicy(r.config.Booking.CancellationMinLeadDays, r.config.BookingLocation())

	bookingService := bookings.NewService(bookings.NewRepository(pg), r.listings, r.walletService, r.txr, policy)

	// Redis lock across instances, in-process lock otherwise
	if rdb := r.db.GetRedis(); rdb != nil {
		bookingService.SetLocker(lock.NewRedisLocker(rdb, constants.LOCK_PREFIX, r.config.Redis.LockTTL), r.config.Booking.LockWaitTimeout)
	} else {
		logger.GetDefault().Warn("Redis not available, booking locks are local to this instance")
		bookingService.SetLocker(lock.NewLocalLocker(), r.config.Booking.LockWaitTimeout)
	}
	bookingService.SetPublisher(r.publisher)
	bookingService.SetMetrics(r.metrics)
	bookingService.SetCancellationRecorder(r.cancellations)

	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingService), authenticated, canManage)
}

// setupOrderRoutes configures product catalogue and order routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup, authenticated, adminOnly gin.HandlerFunc) {
	orderService := orders.NewService(orders.NewRepository(r.db.GetPostgreSQL()), r.walletService, r.txr, r.config.Booking.DefaultCurrency)
	if r.cacheService != nil {
		orderService.SetCacheService(r.cacheService)
	}
	orderService.SetPublisher(r.publisher)
	orderService.SetMetrics(r.metrics)
	orderService.SetCancellationRecorder(r.cancellations)

	orders.SetupOrderRoutes(rg, orders.NewController(orderService), authenticated, adminOnly)
}

// setupAnalyticsRoutes configures admin reporting over bookings, orders and wallets
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup, authenticated, adminOnly gin.HandlerFunc) {
	analyticsService := analytics.NewService(analytics.NewRepository(r.db.GetPostgreSQL()), r.listings, r.config.BookingLocation())
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}

	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService), authenticated, adminOnly)
}
