package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"clinfin/internal/config"
	"clinfin/internal/database"
	"clinfin/internal/handlers"
	"clinfin/internal/logger"
	"clinfin/internal/middleware"
	"clinfin/internal/report"
	"clinfin/internal/services"
	"clinfin/internal/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	_ "clinfin/internal/docs" // Import swagger docs
)

// @title           ClinFin API
// @version         1.0
// @description     Clinic finance administration backend: transactions, activities, approval-gated accounts and financial reports.

// @host      localhost:3000
// @BasePath  /

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

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db)
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db)
	reportingService := services.NewReportingService(db, report.CSVRenderer{})

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	activityHandler := handlers.NewActivityHandler(activityService, auditService)
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)
	reportHandler := handlers.NewReportHandler(reportingService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Rate limit credential endpoints per IP
	loginLimiter := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  10,
	})
	rateLimited := middleware.RateLimit(loginLimiter)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Transaction routes
	transactions := router.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Activity routes
	activities := router.Group("/activites")
	activities.GET("", activityHandler.ListActivities)
	activities.GET("/:id", activityHandler.GetActivityByID)
	activities.POST("", activityHandler.CreateActivity)
	activities.PUT("/:id", activityHandler.UpdateActivity)
	activities.DELETE("/:id", activityHandler.DeleteActivity)

	// Report routes
	reports := router.Group("/reports")
	reports.GET("/summary", reportHandler.Summary)
	reports.GET("/summary/export", reportHandler.ExportSummary)
	reports.GET("/daily", reportHandler.DailyBuckets)
	reports.GET("/daily/export", reportHandler.ExportDaily)
	reports.GET("/timeframe", reportHandler.TimeframeBuckets)

	// Public auth routes
	router.POST("/register", rateLimited, authHandler.Register)
	router.POST("/login", rateLimited, authHandler.Login)
	router.POST("/admins/login", rateLimited, adminHandler.Login)

	// Account administration requires an admin token
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	users := protected.Group("/users")
	users.GET("", userHandler.ListUsers)
	users.GET("/pending", userHandler.ListPendingUsers)
	users.PUT("/:id/approve", userHandler.ApproveUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	admins := protected.Group("/admins")
	admins.GET("", adminHandler.ListAdmins)
	admins.POST("", adminHandler.CreateAdmin)
	admins.DELETE("/:id", adminHandler.DeleteAdmin)

	log.Infof("Starting ClinFin backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
