package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinfin/internal/handlers"
	"clinfin/internal/logger"
	"clinfin/internal/middleware"
	"clinfin/internal/models"
	"clinfin/internal/report"
	"clinfin/internal/services"
	"clinfin/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Transaction{},
		&models.Activity{},
		&models.User{},
		&models.Admin{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db)
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db)
	reportingService := services.NewReportingService(db, report.CSVRenderer{})

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	activityHandler := handlers.NewActivityHandler(activityService, auditService)
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)
	reportHandler := handlers.NewReportHandler(reportingService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	transactions := router.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	activities := router.Group("/activites")
	activities.GET("", activityHandler.ListActivities)
	activities.GET("/:id", activityHandler.GetActivityByID)
	activities.POST("", activityHandler.CreateActivity)
	activities.PUT("/:id", activityHandler.UpdateActivity)
	activities.DELETE("/:id", activityHandler.DeleteActivity)

	reports := router.Group("/reports")
	reports.GET("/summary", reportHandler.Summary)
	reports.GET("/summary/export", reportHandler.ExportSummary)
	reports.GET("/daily", reportHandler.DailyBuckets)
	reports.GET("/daily/export", reportHandler.ExportDaily)
	reports.GET("/timeframe", reportHandler.TimeframeBuckets)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/admins/login", adminHandler.Login)

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

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// adminToken creates an admin directly in the store and logs in through the
// API, returning the bearer token.
func (app *testApp) adminToken(t *testing.T) string {
	t.Helper()

	adminService := services.NewAdminService(app.DB)
	email := fmt.Sprintf("admin%d@clinic.test", dbCounter.Add(1))
	if _, err := adminService.CreateAdmin(email, "password123"); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	body := fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	rec := app.request("POST", "/admins/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}
