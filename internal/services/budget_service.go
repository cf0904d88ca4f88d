package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rodeztrading/Dashboard/internal/allocation"
	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
)

// budgetService computes monthly financial summaries from the user's
// full transaction history.
type budgetService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, loc *time.Location) BudgetServicer {
	return &budgetService{db: db, loc: loc}
}

// GetFinancialSummary runs the 50/25/15/10 allocation for the given
// "YYYY-MM" month. Bucket balances accumulate over all history up to
// the end of the target month; the essential bucket and the income,
// expense and pending-bill totals cover the target month only.
func (s *budgetService) GetFinancialSummary(userID uint, month string) (*allocation.Summary, error) {
	target, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return nil, apperrors.ErrInvalidMonthKey
	}
	year, m := target.Year(), target.Month()

	var accounts []models.Account
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthEnd := time.Date(year, m+1, 1, 0, 0, 0, 0, s.loc)
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date < ?", userID, monthEnd).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary, err := allocation.Summarize(accounts, transactions, year, m, s.loc)
	if err != nil {
		var malformed *allocation.MalformedTransactionError
		if errors.As(err, &malformed) {
			return nil, apperrors.WithMessage(apperrors.ErrMalformedTransaction, malformed.Error())
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summary, nil
}
