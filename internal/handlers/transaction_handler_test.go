package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
)

const (
	testEventID       = "019521a8-0001-7000-8000-000000000001"
	testTransactionID = "019521a8-0002-7000-8000-000000000002"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(eventID, categoryID string, kind models.TransactionKind, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	getTransactionsFn    func(filter services.TransactionFilter) ([]models.Transaction, error)
	getTransactionByIDFn func(id string) (*models.Transaction, error)
	deleteTransactionFn  func(id string) error
}

func (m *mockTransactionService) CreateTransaction(eventID, categoryID string, kind models.TransactionKind, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(eventID, categoryID, kind, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(eventID, categoryID string, kind models.TransactionKind, amount decimal.Decimal, description string, _ time.Time) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: testTransactionID},
					EventID:     eventID,
					CategoryID:  categoryID,
					Kind:        kind,
					Amount:      amount,
					Description: description,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"event_id":"`+testEventID+`","category_id":"`+testCategoryID+`","kind":"expense","amount":"42.50","description":"Groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["description"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", tx["description"])
		}
	})

	t.Run("returns 400 on kind mismatch", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(string, string, models.TransactionKind, decimal.Decimal, string, time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrKindMismatch
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"event_id":"`+testEventID+`","category_id":"`+testCategoryID+`","kind":"income","amount":"10.00","description":"Wrong"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_KIND_MISMATCH")
	})

	t.Run("returns 400 on malformed event id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"event_id":"nope","category_id":"`+testCategoryID+`","kind":"expense","amount":"10.00","description":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown event", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(string, string, models.TransactionKind, decimal.Decimal, string, time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrEventNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"event_id":"`+testEventID+`","category_id":"`+testCategoryID+`","kind":"expense","amount":"10.00","description":"x"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EVENT_NOT_FOUND")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes event filter from query", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		txSvc := &mockTransactionService{
			getTransactionsFn: func(filter services.TransactionFilter) ([]models.Transaction, error) {
				gotFilter = filter
				return []models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions?event_id="+testEventID+"&kind=expense", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.EventID == nil || *gotFilter.EventID != testEventID {
			t.Errorf("expected event filter %s, got %v", testEventID, gotFilter.EventID)
		}
		if gotFilter.Kind == nil || *gotFilter.Kind != models.TransactionKindExpense {
			t.Errorf("expected kind filter expense, got %v", gotFilter.Kind)
		}
	})

	t.Run("returns 400 on malformed event filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?event_id=nope", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
