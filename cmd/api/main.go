package main

import (
	"fmt"
	"os"

	"retirecast/internal/api/handlers"
	"retirecast/internal/api/middleware"
	"retirecast/internal/config"
	"retirecast/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	app, err := config.LoadApp()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the run store; the API degrades gracefully without it.
	var st *store.Store
	storePath := os.Getenv("STORE_PATH")
	if storePath == "" {
		storePath = app.StorePath()
	}
	st, err = store.Open(storePath)
	if err != nil {
		log.WithError(err).Warn("run store unavailable, save/ledger endpoints disabled")
		st = nil
	} else {
		defer st.Close()
		log.WithField("path", storePath).Info("run store opened")
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	simulateHandler := handlers.NewSimulateHandler(st, app, log)
	sweepHandler := handlers.NewSweepHandler(app, log)
	catalogHandler := handlers.NewCatalogHandler(app)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/simulate/compare", simulateHandler.CompareSimulations)
		api.POST("/sweep", sweepHandler.SweepConversions)

		api.GET("/runs", simulateHandler.ListRuns)
		api.GET("/runs/:id/ledger", simulateHandler.GetLedger)

		api.GET("/profiles", catalogHandler.ListProfiles)
		api.GET("/strategies", catalogHandler.ListStrategies)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.WithField("addr", addr).Info("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
