package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/burhani-census/census-api/internal/config"
	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/handlers"
	"github.com/burhani-census/census-api/internal/middleware"
	"github.com/burhani-census/census-api/internal/services"
	"github.com/burhani-census/census-api/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Census API")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Apply schema migrations
	logger.Info("Applying database migrations...")
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	mumineenRepository := database.NewMumineenRepository(db)
	miqaatRepository := database.NewMiqaatRepository(db)
	miqaatEventRepository := database.NewMiqaatEventRepository(db)
	registrationRepository := database.NewRegistrationRepository(db)
	arrivalScanRepository := database.NewArrivalScanRepository(db)
	accommodationRepository := database.NewAccommodationRepository(db)
	waazCenterRepository := database.NewWaazCenterRepository(db)
	preferenceRepository := database.NewPreferenceRepository(db)
	operatorRepository := database.NewOperatorRepository(db)
	operatorSessionRepository := database.NewOperatorSessionRepository(db)

	familyService := services.NewFamilyService(mumineenRepository)

	// Initialize handlers
	mumineenHandler := handlers.NewMumineenHandler(mumineenRepository, familyService)
	miqaatHandler := handlers.NewMiqaatHandler(miqaatRepository, miqaatEventRepository)
	miqaatEventHandler := handlers.NewMiqaatEventHandler(miqaatRepository, miqaatEventRepository)
	registrationHandler := handlers.NewRegistrationHandler(miqaatRepository, mumineenRepository, registrationRepository)
	arrivalScanHandler := handlers.NewArrivalScanHandler(miqaatRepository, mumineenRepository, arrivalScanRepository)
	accommodationHandler := handlers.NewAccommodationHandler(accommodationRepository, mumineenRepository, miqaatRepository, familyService)
	waazCenterHandler := handlers.NewWaazCenterHandler(waazCenterRepository)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceRepository, waazCenterRepository, mumineenRepository, miqaatRepository)
	authHandler := handlers.NewAuthHandler(operatorRepository, operatorSessionRepository, jwtService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Member routes. Literal segments sit alongside :id; gin matches
	// static segments before params.
	mumineen := router.Group("/mumineen")
	{
		mumineen.GET("", mumineenHandler.List)
		mumineen.POST("", mumineenHandler.Create)
		mumineen.GET("/search", mumineenHandler.Search)
		mumineen.GET("/hofs", mumineenHandler.Hofs)
		mumineen.GET("/hof-by-its/:itsId", mumineenHandler.HofByIts)
		mumineen.GET("/family/:hofItsId", mumineenHandler.Family)
		mumineen.GET("/:id", mumineenHandler.Show)
		mumineen.PUT("/:id", mumineenHandler.Update)
		mumineen.DELETE("/:id", mumineenHandler.Delete)
	}

	// Miqaat routes with nested sub-event, registration and scan routes
	miqaats := router.Group("/miqaats")
	{
		miqaats.GET("", miqaatHandler.List)
		miqaats.POST("", miqaatHandler.Create)
		miqaats.GET("/upcoming", miqaatHandler.Upcoming)
		miqaats.GET("/:id", miqaatHandler.Show)
		miqaats.PUT("/:id", miqaatHandler.Update)
		miqaats.DELETE("/:id", miqaatHandler.Delete)

		miqaats.GET("/:id/events", miqaatHandler.WithEvents)
		miqaats.POST("/:id/events", miqaatEventHandler.Create)
		miqaats.GET("/:id/events/:eventId", miqaatEventHandler.Show)
		miqaats.PUT("/:id/events/:eventId", miqaatEventHandler.Update)
		miqaats.DELETE("/:id/events/:eventId", miqaatEventHandler.Delete)

		miqaats.GET("/:id/registrations", registrationHandler.List)
		miqaats.POST("/:id/registrations", registrationHandler.Create)
		miqaats.DELETE("/:id/registrations/:registrationId", registrationHandler.Delete)

		miqaats.GET("/:id/scans", arrivalScanHandler.List)
		miqaats.POST("/:id/scans", middleware.AuthMiddleware(jwtService), arrivalScanHandler.Create)
	}

	// Accommodation routes
	accommodations := router.Group("/accommodations")
	{
		accommodations.GET("", accommodationHandler.List)
		accommodations.POST("", accommodationHandler.Create)
		accommodations.GET("/family/:hofItsId", accommodationHandler.Family)
		accommodations.GET("/:id", accommodationHandler.Show)
		accommodations.PUT("/:id", accommodationHandler.Update)
		accommodations.DELETE("/:id", accommodationHandler.Delete)
	}

	// Waaz center routes
	waazCenters := router.Group("/waaz-centers")
	{
		waazCenters.GET("", waazCenterHandler.List)
		waazCenters.POST("", waazCenterHandler.Create)
		waazCenters.GET("/:id", waazCenterHandler.Show)
		waazCenters.PUT("/:id", waazCenterHandler.Update)
		waazCenters.DELETE("/:id", waazCenterHandler.Delete)
	}

	preferences := router.Group("/waaz-center-preferences")
	{
		preferences.GET("", preferenceHandler.List)
		preferences.POST("", preferenceHandler.Create)
		preferences.DELETE("/:id", preferenceHandler.Delete)
	}

	// Operator authentication routes
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/me", authHandler.Me)
			protected.GET("/sessions", authHandler.Sessions)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
