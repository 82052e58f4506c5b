package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"turnosya/internal/database"
	"turnosya/internal/integrations/backmp"
	"turnosya/internal/middleware"
	bookingmod "turnosya/internal/modules/booking"
	fieldmod "turnosya/internal/modules/field"
	paymentmod "turnosya/internal/modules/payment"
	"turnosya/internal/modules/pricing"
	reviewmod "turnosya/internal/modules/review"
	jwtsvc "turnosya/internal/pkg/jwt"
	"turnosya/internal/pkg/metrics"
	"turnosya/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal().Msg("JWT_SECRET is empty")
	}
	backmpURL := os.Getenv("BACKMP_URL")
	if backmpURL == "" {
		logger.Fatal().Msg("BACKMP_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	fieldRepo := repository.NewFieldRepository(db)
	specialHoursRepo := repository.NewSpecialHoursRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	j := jwtsvc.New(secret)
	gateway := backmp.NewClient(backmpURL, 10*time.Second, logger)

	paymentService := paymentmod.NewService(gateway, logger)

	fieldService := fieldmod.NewService(fieldRepo, specialHoursRepo)
	fieldHandler := fieldmod.NewHandler(fieldService)

	bookingService := bookingmod.NewService(
		bookingRepo,
		fieldRepo,
		specialHoursRepo,
		paymentService,
		pricing.NewService(),
		m,
		logger,
	)
	bookingHandler := bookingmod.NewHandler(bookingService)

	paymentHandler := paymentmod.NewHandler(bookingService)

	reviewService := reviewmod.NewService(reviewRepo, fieldRepo, logger)
	reviewHandler := reviewmod.NewHandler(reviewService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(m.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		// public
		fieldHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// the gateway authenticates via webhook secret on its side, not JWT
		paymentHandler.RegisterRoutes(v1)

		// authenticated users
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
		}

		// field owners
		owner := v1.Group("/")
		owner.Use(middleware.Auth(j), middleware.RequireRole("field_owner", "admin"))
		{
			fieldHandler.RegisterOwnerRoutes(owner)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
