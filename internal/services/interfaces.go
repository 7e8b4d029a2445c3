package services

import (
	"time"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, kind models.CategoryKind, color string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoriesByKind(kind models.CategoryKind) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id, name string, kind models.CategoryKind, color string) (*models.Category, error)
	DeleteCategory(id string) error
	CountCategoriesByKind(kind models.CategoryKind) (int64, error)
}

// EventServicer defines the contract for event (retreat) business logic.
type EventServicer interface {
	CreateEvent(name, description string, startDate, endDate time.Time, location string, participants int) (*models.Event, error)
	GetEvents() ([]models.Event, error)
	GetEventsByState(state models.EventState) ([]models.Event, error)
	SearchEventsByName(query string) ([]models.Event, error)
	GetEventByID(id string) (*models.Event, error)
	UpdateEvent(id, name, description string, startDate, endDate time.Time, location string, participants int) (*models.Event, error)
	SetEventState(id string, state models.EventState) (*models.Event, error)
	DeleteEvent(id string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	EventID *string
	Kind    *models.TransactionKind
}

// TransactionServicer defines the contract for the transaction ledger.
// CreateTransaction is the validated compound write: it checks that the
// event and category exist and that the requested kind agrees with the
// category's kind, all inside one database transaction.
type TransactionServicer interface {
	CreateTransaction(eventID, categoryID string, kind models.TransactionKind, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetTransactions(filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// BalanceReport contains income and expense totals and their net balance,
// for a single event or globally.
type BalanceReport struct {
	EventID      string          `json:"event_id,omitempty"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryTotal is the summed amount recorded against one category.
type CategoryTotal struct {
	CategoryID   string              `json:"category_id"`
	CategoryName string              `json:"category_name"`
	Kind         models.CategoryKind `json:"kind"`
	Total        decimal.Decimal     `json:"total"`
}

// CrossEventStatistics aggregates over events that have at least one
// transaction; empty events are excluded so averages are not diluted.
type CrossEventStatistics struct {
	EventsWithActivity int             `json:"events_with_activity"`
	AverageBalance     decimal.Decimal `json:"average_balance"`
	AverageIncome      decimal.Decimal `json:"average_income"`
	AverageExpense     decimal.Decimal `json:"average_expense"`
}

// StatisticsServicer defines the read-side aggregation contract. Every
// method computes its result from a single consistent snapshot of the
// ledger; none of them mutate state.
type StatisticsServicer interface {
	EventBalance(eventID string) (*BalanceReport, error)
	GlobalBalance() (*BalanceReport, error)
	CategoryTotals(eventID *string) ([]CategoryTotal, error)
	CrossEventStatistics() (*CrossEventStatistics, error)
}
