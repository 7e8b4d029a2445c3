package services

import "gorm.io/gorm"

// Gateway is the façade every collaborator (HTTP handlers, CLI commands, a
// future desktop bridge) calls through. All four servicers share one pooled
// database handle, which serializes writers and gives compound operations
// their atomicity.
type Gateway struct {
	Categories   CategoryServicer
	Events       EventServicer
	Transactions TransactionServicer
	Statistics   StatisticsServicer
}

// NewGateway wires the service layer over a shared database handle.
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{
		Categories:   NewCategoryService(db),
		Events:       NewEventService(db),
		Transactions: NewTransactionService(db),
		Statistics:   NewStatisticsService(db),
	}
}
