package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/middleware"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/routes"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting WasteWise Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	tableModels := []interface{}{
		&models.User{},
		&models.Ranking{},
		&models.TierUnlock{},
		&models.Challenge{},
		&models.ChallengeCompletion{},
		&models.Submission{},
		&models.Report{},
		&models.WasteLog{},
		&models.Schedule{},
		&models.ScheduleEntry{},
		&models.Listing{},
		&models.ListingComment{},
		&models.ListingMetric{},
	}
	if err := database.DB.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	logger.Info().Msg("Database migrations complete")

	if err := services.InitCloudinary(); err != nil {
		logger.Warn().Err(err).Msg("Image host not configured, uploads disabled")
	}
	services.InitMailer()

	reminderScheduler, err := services.StartReminderScheduler(database.DB)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to start reminder scheduler")
	}

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api)
		routes.RegisterUserRoutes(api)
		routes.RegisterAdminRoutes(api)
		routes.RegisterListingRoutes(api)
		routes.RegisterMapsRoutes(api)
		routes.RegisterTokenRoutes(api)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"message": "WasteWise Backend is running",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "3001"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	if reminderScheduler != nil {
		if err := reminderScheduler.Shutdown(); err != nil {
			logger.Warn().Err(err).Msg("Reminder scheduler shutdown failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
