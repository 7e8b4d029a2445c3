package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/config"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/database"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/handlers"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/logger"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/middleware"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// The gateway is the single façade all collaborators call through.
	gateway := services.NewGateway(dbManager.DB())

	categoryHandler := handlers.NewCategoryHandler(gateway.Categories)
	eventHandler := handlers.NewEventHandler(gateway.Events)
	transactionHandler := handlers.NewTransactionHandler(gateway.Transactions)
	statisticsHandler := handlers.NewStatisticsHandler(gateway.Statistics)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	events := v1.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.GetEvents)
	events.GET("/:id", eventHandler.GetEventByID)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.PATCH("/:id/state", eventHandler.SetEventState)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.GET("/:id/balance", statisticsHandler.GetEventBalance)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	statistics := v1.Group("/statistics")
	statistics.GET("/balance", statisticsHandler.GetGlobalBalance)
	statistics.GET("/categories", statisticsHandler.GetCategoryTotals)
	statistics.GET("/events", statisticsHandler.GetCrossEventStatistics)

	log.Infof("Starting retiros backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
