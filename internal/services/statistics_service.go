package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

// statisticsService computes balances and cross-event statistics from
// ledger contents. Each report runs inside one database transaction so the
// values it combines come from a single snapshot, never from a
// get-then-compute sequence straddling a concurrent write.
type statisticsService struct {
	db *gorm.DB
}

// NewStatisticsService creates a new StatisticsServicer.
func NewStatisticsService(db *gorm.DB) StatisticsServicer {
	return &statisticsService{db: db}
}

// eventTotals carries per-event income/expense sums scanned from a grouped
// aggregate query.
type eventTotals struct {
	EventID string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func sumByKind(tx *gorm.DB, kind models.TransactionKind, eventID *string) (decimal.Decimal, error) {
	q := tx.Model(&models.Transaction{}).Where("kind = ?", kind)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	}

	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

func balanceReport(tx *gorm.DB, eventID *string) (*BalanceReport, error) {
	income, err := sumByKind(tx, models.TransactionKindIncome, eventID)
	if err != nil {
		return nil, err
	}
	expense, err := sumByKind(tx, models.TransactionKindExpense, eventID)
	if err != nil {
		return nil, err
	}

	report := &BalanceReport{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
	if eventID != nil {
		report.EventID = *eventID
	}
	return report, nil
}

// EventBalance computes income, expense, and net balance for one event.
// An event with no transactions yields a zero report; an unknown event id
// is a not-found error.
func (s *statisticsService) EventBalance(eventID string) (*BalanceReport, error) {
	var report *BalanceReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		var txErr error
		report, txErr = balanceReport(tx, &eventID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GlobalBalance computes income, expense, and net balance over all events.
func (s *statisticsService) GlobalBalance() (*BalanceReport, error) {
	var report *BalanceReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		report, txErr = balanceReport(tx, nil)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CategoryTotals sums recorded amounts per category, optionally restricted
// to one event. Results are ordered by total descending; ties keep category
// creation order, so "top expense categories" reporting is stable.
func (s *statisticsService) CategoryTotals(eventID *string) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if eventID != nil {
			var count int64
			if err := tx.Model(&models.Event{}).Where("id = ?", *eventID).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
			if count == 0 {
				return apperrors.ErrEventNotFound
			}
		}

		q := tx.Model(&models.Transaction{}).
			Select("transactions.category_id AS category_id, categories.name AS category_name, categories.kind AS kind, SUM(transactions.amount) AS total").
			Joins("JOIN categories ON categories.id = transactions.category_id").
			Group("transactions.category_id, categories.name, categories.kind, categories.created_at").
			Order("total DESC, categories.created_at ASC")
		if eventID != nil {
			q = q.Where("transactions.event_id = ?", *eventID)
		}

		if err := q.Scan(&totals).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// CrossEventStatistics averages balance, income, and expense over events
// that have at least one transaction. Events without activity are excluded
// rather than dragging the averages toward zero.
func (s *statisticsService) CrossEventStatistics() (*CrossEventStatistics, error) {
	stats := &CrossEventStatistics{
		AverageBalance: decimal.Zero,
		AverageIncome:  decimal.Zero,
		AverageExpense: decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rows []eventTotals
		if err := tx.Model(&models.Transaction{}).
			Select("event_id AS event_id, " +
				"COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0) AS income, " +
				"COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0) AS expense").
			Group("event_id").
			Scan(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if len(rows) == 0 {
			return nil
		}

		var totalIncome, totalExpense decimal.Decimal
		for _, r := range rows {
			totalIncome = totalIncome.Add(r.Income)
			totalExpense = totalExpense.Add(r.Expense)
		}

		n := decimal.NewFromInt(int64(len(rows)))
		stats.EventsWithActivity = len(rows)
		stats.AverageIncome = totalIncome.Div(n).Round(2)
		stats.AverageExpense = totalExpense.Div(n).Round(2)
		stats.AverageBalance = totalIncome.Sub(totalExpense).Div(n).Round(2)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
