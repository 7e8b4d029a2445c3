package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given kind with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  fmt.Sprintf("Test Category %d", nextID()),
		Kind:  kind,
		Color: "#336699",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestEvent creates a three-day event in the planning state.
func CreateTestEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	start := time.Now().AddDate(0, 1, 0)
	event := &models.Event{
		Name:         fmt.Sprintf("Test Event %d", nextID()),
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 3),
		Participants: 10,
		State:        models.EventStatePlanning,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestTransaction creates a transaction of the given kind and amount
// against an existing event and category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, eventID, categoryID string, kind models.TransactionKind, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		EventID:     eventID,
		CategoryID:  categoryID,
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
