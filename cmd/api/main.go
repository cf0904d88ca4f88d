package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Rodeztrading/Dashboard/internal/config"
	"github.com/Rodeztrading/Dashboard/internal/database"
	"github.com/Rodeztrading/Dashboard/internal/handlers"
	"github.com/Rodeztrading/Dashboard/internal/logger"
	"github.com/Rodeztrading/Dashboard/internal/middleware"
	"github.com/Rodeztrading/Dashboard/internal/services"
	"github.com/Rodeztrading/Dashboard/internal/storage"
	"github.com/Rodeztrading/Dashboard/internal/validator"
)

// @title           Rodez Trading Dashboard API
// @version         1.0
// @description     Personal finance and binary-options trading journal: accounts, bucket-based budget allocation, pending bills, trade timeline and custody calendar.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	loc := appConfig.Location()

	validator.Register()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Screenshot storage is optional; without a bucket the journal keeps
	// images inline.
	var imageStore storage.ImageStore
	if appConfig.TradeImageBucket != "" {
		gcsStore, err := storage.NewGCSStore(context.Background(), appConfig.TradeImageBucket)
		if err != nil {
			return fmt.Errorf("failed to initialize image storage: %w", err)
		}
		defer gcsStore.Close()
		imageStore = gcsStore
		log.Infof("Trade screenshots stored in bucket %s", appConfig.TradeImageBucket)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService, loc)
	budgetService := services.NewBudgetService(db, loc)
	tradeService := services.NewTradeService(db, imageStore, loc)
	custodyService := services.NewCustodyService(db, loc)

	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, loc)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	custodyHandler := handlers.NewCustodyHandler(custodyService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/bills", transactionHandler.GetPendingBills)
	transactions.GET("/timeline", transactionHandler.GetCashflowTimeline)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/pay", transactionHandler.PayBill)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.POST("/:id/subcategories", categoryHandler.AddSubcategory)
	categories.DELETE("/:id/subcategories/:subcategory_id", categoryHandler.RemoveSubcategory)

	budget := protected.Group("/budget")
	budget.GET("/summary", budgetHandler.GetSummary)

	trades := protected.Group("/trades")
	trades.POST("", tradeHandler.CreateTrade)
	trades.GET("", tradeHandler.GetTrades)
	trades.GET("/timeline", tradeHandler.GetTradeTimeline)
	trades.DELETE("/:id", tradeHandler.DeleteTrade)

	custody := protected.Group("/custody")
	custody.GET("", custodyHandler.GetMonth)
	custody.GET("/:date", custodyHandler.GetDay)
	custody.POST("/:date/toggle", custodyHandler.ToggleDay)
	custody.DELETE("/:date", custodyHandler.DeleteOverride)

	log.Infof("Starting dashboard API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
