package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/config"
	"github.com/laddalodge/booking-backend/internal/database"
	"github.com/laddalodge/booking-backend/internal/handlers"
	"github.com/laddalodge/booking-backend/internal/middleware"
	"github.com/laddalodge/booking-backend/internal/services"
	"github.com/laddalodge/booking-backend/pkg/jwt"
	"github.com/laddalodge/booking-backend/pkg/mailer"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

// stores bundles the persistence layer behind the service interfaces so
// the postgres and in-memory backends wire up identically.
type stores struct {
	rooms        services.RoomStore
	bookings     services.BookingStore
	blockedDates services.BlockedDateStore
	settings     services.SettingsStore
	ping         func() error
	close        func() error
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting La D Da Lodge booking backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	st, err := buildStores(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer st.close()

	// Services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	availabilityService := services.NewAvailabilityService(st.blockedDates)
	ledgerService := services.NewLedgerService(st.rooms, st.bookings, availabilityService)
	notificationService := services.NewNotificationService(buildMailGateway(cfg, logger), logger)

	seedService := services.NewSeedService(st.rooms, st.settings, logger)
	if err := seedService.Run(cfg.Lodge.ContactPhone, cfg.Lodge.ContactEmail); err != nil {
		logger.Fatalf("Failed to seed defaults: %v", err)
	}

	// Handlers
	roomHandler := handlers.NewRoomHandler(st.rooms, ledgerService, availabilityService, logger)
	bookingHandler := handlers.NewBookingHandler(ledgerService, st.settings, notificationService, logger)
	blockedDateHandler := handlers.NewBlockedDateHandler(availabilityService, logger)
	adminHandler := handlers.NewAdminHandler(st.settings, st.rooms, ledgerService, availabilityService, logger)
	adminAuthHandler := handlers.NewAdminAuthHandler(
		cfg.Admin,
		jwtService,
		int(cfg.JWT.AccessTokenExpiry.Seconds()),
		logger,
	)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(st.ping))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/rooms", roomHandler.ListRooms)
		v1.GET("/rooms/:type_id", roomHandler.GetRoom)
		v1.GET("/availability", roomHandler.CheckAvailability)

		bookings := v1.Group("/bookings")
		{
			bookings.POST("/quote", bookingHandler.Quote)
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", bookingHandler.ListByEmail)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", adminAuthHandler.Login)
			admin.POST("/refresh", adminAuthHandler.Refresh)

			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService, logger))
			{
				protected.GET("/bookings", bookingHandler.AdminList)
				protected.DELETE("/bookings/:id", bookingHandler.AdminDelete)
				protected.POST("/bookings/:id/cancel", bookingHandler.Cancel)

				protected.GET("/blocked-dates", blockedDateHandler.List)
				protected.POST("/blocked-dates", blockedDateHandler.Create)
				protected.DELETE("/blocked-dates/:id", blockedDateHandler.Delete)

				protected.GET("/settings", adminHandler.GetSettings)
				protected.PUT("/settings", adminHandler.SaveSettings)
				protected.GET("/stats", adminHandler.GetStats)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// buildStores connects the configured persistence backend
func buildStores(cfg *config.Config, logger *logrus.Logger) (*stores, error) {
	if cfg.Store.Backend == "memory" {
		logger.Warn("Using in-memory store; all data is lost on restart")
		return &stores{
			rooms:        database.NewMemoryRoomStore(),
			bookings:     database.NewMemoryBookingStore(),
			blockedDates: database.NewMemoryBlockedDateStore(),
			settings:     database.NewMemorySettingsStore(),
			ping:         func() error { return nil },
			close:        func() error { return nil },
		}, nil
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established")

	if err := database.EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &stores{
		rooms:        database.NewRoomRepository(db),
		bookings:     database.NewBookingRepository(db),
		blockedDates: database.NewBlockedDateRepository(db),
		settings:     database.NewSettingsRepository(db),
		ping:         db.Ping,
		close:        db.Close,
	}, nil
}

// buildMailGateway picks the confirmation-mail transport for the
// configured mode
func buildMailGateway(cfg *config.Config, logger *logrus.Logger) mailer.Gateway {
	if cfg.Mail.Mode == "production" {
		return mailer.NewHTTPGateway(mailer.HTTPConfig{
			APIURL:   cfg.Mail.APIURL,
			Username: cfg.Mail.APIUsername,
			Password: cfg.Mail.APIPassword,
			Sender:   cfg.Mail.FromAddress,
		})
	}
	return mailer.NewNoopGateway(logger)
}

// healthCheckHandler reports process and storage health
func healthCheckHandler(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
