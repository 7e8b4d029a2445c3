package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

// maxAmount is a policy bound on single transaction amounts, enforced at
// the validation boundary rather than in the schema.
var maxAmount = decimal.RequireFromString("999999.99")

// transactionService handles the transaction ledger.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a monetary movement against an event and a
// category. The referential checks and the insert run inside a single
// database transaction: if the category kind disagrees with the requested
// kind, or either reference is missing, no row is persisted.
func (s *transactionService) CreateTransaction(
	eventID string,
	categoryID string,
	kind models.TransactionKind,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction kind must be income or expense")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be at most 999999.99")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(description) > 200 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 200 characters")
	}
	if date.IsZero() {
		date = time.Now()
	}

	var result *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", categoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		// Cross-entity rule: the transaction kind must equal the kind of
		// its category.
		if string(category.Kind) != string(kind) {
			return apperrors.ErrKindMismatch
		}

		var event models.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		transaction := &models.Transaction{
			EventID:     eventID,
			CategoryID:  categoryID,
			Kind:        kind,
			Amount:      amount,
			Description: description,
			Date:        date,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		result = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetTransactions retrieves transactions in creation order, optionally
// restricted to one event and/or one kind. Filtering by an event that does
// not exist is an error, not an empty list.
func (s *transactionService) GetTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{})

	if filter.EventID != nil {
		var count int64
		if err := s.db.Model(&models.Event{}).Where("id = ?", *filter.EventID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if count == 0 {
			return nil, apperrors.ErrEventNotFound
		}
		q = q.Where("event_id = ?", *filter.EventID)
	}
	if filter.Kind != nil {
		if !filter.Kind.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction kind must be income or expense")
		}
		q = q.Where("kind = ?", *filter.Kind)
	}

	var transactions []models.Transaction
	if err := q.Order("created_at ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a single transaction. Category and event rows
// are unaffected.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
