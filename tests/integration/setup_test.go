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

	"github.com/SergioSanchezIglesias/retiros-backend/internal/handlers"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/logger"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/middleware"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/validator"
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

// setupIsolatedDB creates an isolated in-memory SQLite database for a single
// test. Foreign keys are switched on so the cascade and restrict rules
// behave as in production.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Category{},
		&models.Event{},
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

	gateway := services.NewGateway(db)

	categoryHandler := handlers.NewCategoryHandler(gateway.Categories)
	eventHandler := handlers.NewEventHandler(gateway.Events)
	transactionHandler := handlers.NewTransactionHandler(gateway.Transactions)
	statisticsHandler := handlers.NewStatisticsHandler(gateway.Statistics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

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

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
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

// createCategory creates a category over the API and returns its id.
func (app *testApp) createCategory(t *testing.T, name, kind, color string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"kind":%q,"color":%q}`, name, kind, color)
	rec := app.request("POST", "/api/v1/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// createEvent creates an event over the API and returns its id.
func (app *testApp) createEvent(t *testing.T, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"start_date":"2026-07-10T00:00:00Z","end_date":"2026-07-13T00:00:00Z","location":"Gredos","participants":20}`, name)
	rec := app.request("POST", "/api/v1/events", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	event := result["event"].(map[string]interface{})
	return event["id"].(string)
}

// createTransaction records a transaction over the API and returns its id.
func (app *testApp) createTransaction(t *testing.T, eventID, categoryID, kind, amount, description string) string {
	t.Helper()
	body := fmt.Sprintf(`{"event_id":%q,"category_id":%q,"kind":%q,"amount":%q,"description":%q}`,
		eventID, categoryID, kind, amount, description)
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
