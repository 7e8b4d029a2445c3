package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/uuid"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactions services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactions services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Transactions are immutable; there is no update payload.
type CreateTransactionRequest struct {
	EventID     string                 `json:"event_id" binding:"required,uuid"`
	CategoryID  string                 `json:"category_id" binding:"required,uuid"`
	Kind        models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Description string                 `json:"description" binding:"required,max=200"`
	Date        time.Time              `json:"date"`
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactions.CreateTransaction(req.EventID, req.CategoryID, req.Kind, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the retrieval of transactions, optionally
// filtered by event and/or kind.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var filter services.TransactionFilter

	if eventID := c.Query("event_id"); eventID != "" {
		if !uuid.IsValid(eventID) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid event_id"))
			return
		}
		filter.EventID = &eventID
	}
	if kind := c.Query("kind"); kind != "" {
		k := models.TransactionKind(kind)
		filter.Kind = &k
	}

	transactions, err := h.transactions.GetTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionByID handles the retrieval of a specific transaction
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactions.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactions.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
