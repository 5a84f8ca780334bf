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
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/ai"
	"github.com/aura-health/aura-backend/internal/config"
	"github.com/aura-health/aura-backend/internal/handler"
	"github.com/aura-health/aura-backend/internal/middleware"
	"github.com/aura-health/aura-backend/internal/pdf"
	"github.com/aura-health/aura-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Bool("ai_configured", cfg.AI.APIKey != ""),
	)

	// The AI client tolerates a missing key: every caller falls back to its
	// canned value when the collaborator is unreachable.
	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout, logger)
	if cfg.AI.APIKey == "" {
		logger.Warn("no AI API key configured, insight and forecast run on fallbacks only")
	}

	// Initialize services
	forecastService := service.NewForecastService(aiClient, logger)
	insightService := service.NewInsightService(aiClient, logger)
	stateManager := service.NewStateManager(forecastService, insightService, cfg.Sync.Latency, logger)
	testService := service.NewHealthTestService(logger)
	reportService := service.NewReportService(stateManager, pdf.NewGenerator(logger), logger)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(stateManager, logger)
	simulationHandler := handler.NewSimulationHandler(stateManager, logger)
	assistantHandler := handler.NewAssistantHandler(stateManager, logger)
	forecastHandler := handler.NewForecastHandler(stateManager, logger)
	recordsHandler := handler.NewRecordsHandler(stateManager, logger)
	testHandler := handler.NewHealthTestHandler(testService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Liveness
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "aura-backend",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", dashboardHandler.GetDashboard)
		v1.POST("/dashboard/refresh", dashboardHandler.Refresh)

		v1.GET("/simulation/actions", simulationHandler.ListActions)
		v1.POST("/simulation/:actionID", simulationHandler.Activate)
		v1.DELETE("/simulation", simulationHandler.Clear)

		v1.GET("/forecast", forecastHandler.GetForecast)
		v1.GET("/insight", assistantHandler.GetInsight)
		v1.POST("/chat", assistantHandler.PostChat)

		v1.POST("/symptoms", recordsHandler.PostSymptom)
		v1.GET("/medications", recordsHandler.GetMedications)
		v1.POST("/medications/:id/taken", recordsHandler.MarkMedicationTaken)
		v1.GET("/appointments", recordsHandler.GetAppointments)
		v1.GET("/environment", recordsHandler.GetEnvironment)
		v1.GET("/activity", recordsHandler.GetActivity)
		v1.GET("/device", recordsHandler.GetDevice)
		v1.POST("/device/sync", recordsHandler.SyncDevice)

		v1.POST("/tests/breath", testHandler.StartBreathHold)
		v1.POST("/tests/breath/:id/stop", testHandler.StopBreathHold)
		v1.POST("/tests/reflex", testHandler.StartReflex)
		v1.POST("/tests/reflex/:id/tap", testHandler.TapReflex)
		v1.POST("/tests/tremor", testHandler.StartTremor)
		v1.POST("/tests/tremor/:id/samples", testHandler.PostTremorSample)
		v1.POST("/tests/tremor/:id/finish", testHandler.FinishTremor)

		v1.GET("/report", reportHandler.GetReport)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
