package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kopilka/internal/handlers"
	"kopilka/internal/logger"
	"kopilka/internal/middleware"
	"kopilka/internal/models"
	"kopilka/internal/services"
)

const adminToken = "integration-test-token"

// testApp holds the full application stack for integration tests. The bot
// transport is not included; these tests drive the service layer directly and
// assert through the admin HTTP surface.
type testApp struct {
	DB         *gorm.DB
	Router     *gin.Engine
	Users      services.UserServicer
	Categories services.CategoryServicer
	Finance    services.FinanceServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
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
		&models.User{},
		&models.Category{},
		&models.Transaction{},
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

	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	financeService := services.NewFinanceService(db, categoryService)

	adminHandler := handlers.NewAdminHandler(userService, financeService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", handlers.Health)

	v1 := router.Group("/api/v1", middleware.AdminAuth(adminToken))
	v1.GET("/users/:telegram_id/stats", adminHandler.GetWeekStats)
	v1.GET("/users/:telegram_id/transactions", adminHandler.ListTransactions)
	v1.DELETE("/transactions/:id", adminHandler.DeleteTransaction)

	return &testApp{
		DB:         db,
		Router:     router,
		Users:      userService,
		Categories: categoryService,
		Finance:    financeService,
	}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
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

// mustStatus fails the test unless the recorder holds the expected status.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
