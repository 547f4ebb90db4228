package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"kopilka/internal/config"
	"kopilka/internal/database"
	"kopilka/internal/handlers"
	"kopilka/internal/logger"
	"kopilka/internal/middleware"
	"kopilka/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	financeService := services.NewFinanceService(db, categoryService)

	adminHandler := handlers.NewAdminHandler(userService, financeService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogging())

	router.GET("/healthz", handlers.Health)

	v1 := router.Group("/api/v1", middleware.AdminAuth(cfg.AdminToken))
	{
		v1.GET("/users/:telegram_id/stats", adminHandler.GetWeekStats)
		v1.GET("/users/:telegram_id/transactions", adminHandler.ListTransactions)
		v1.DELETE("/transactions/:id", adminHandler.DeleteTransaction)
	}

	logger.Get().Infow("admin API listening", "port", cfg.Port)
	return router.Run(":" + cfg.Port)
}
