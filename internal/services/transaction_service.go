package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rodeztrading/Dashboard/internal/allocation"
	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/timeline"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	accounts AccountServicer
	loc      *time.Location
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accounts AccountServicer, loc *time.Location) TransactionServicer {
	return &transactionService{db: db, accounts: accounts, loc: loc}
}

// CreateTransaction records a transaction and applies its balance effect
// atomically. Pending unpaid bills touch no balance until paid. A settled
// stability-bucket expense additionally creates a replenishment bill.
func (s *transactionService) CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	// Only expenses can be pending bills.
	if input.IsPending && input.Type != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "only expenses can be pending")
	}
	if input.Date.IsZero() {
		input.Date = time.Now().In(s.loc)
	}

	account, err := s.accounts.GetAccountByID(userID, input.AccountID)
	if err != nil {
		return nil, err
	}

	var toAccount *models.Account
	if input.Type == models.TransactionTypeTransfer {
		if input.ToAccountID == nil {
			return nil, apperrors.ErrMissingTransferTarget
		}
		if *input.ToAccountID == input.AccountID {
			return nil, apperrors.ErrSameAccountTransfer
		}
		toAccount, err = s.accounts.GetAccountByID(userID, *input.ToAccountID)
		if err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:             userID,
		AccountID:          input.AccountID,
		ToAccountID:        input.ToAccountID,
		Type:               input.Type,
		Amount:             input.Amount,
		Description:        input.Description,
		Date:               input.Date,
		CategoryID:         input.CategoryID,
		SubcategoryID:      input.SubcategoryID,
		CategoryName:       input.CategoryName,
		IsPending:          input.IsPending,
		DueDate:            input.DueDate,
		Bucket:             input.Bucket,
		InvestmentName:     input.InvestmentName,
		IsInvestmentReturn: input.IsInvestmentReturn,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if !transaction.IsPending {
			if err := s.applyEffect(tx, transaction, account, toAccount, 1); err != nil {
				return err
			}
		}

		if repl := allocation.ReplenishmentFor(*transaction); repl != nil {
			repl.UserID = userID
			repl.AccountID = transaction.AccountID
			if err := tx.Create(repl).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// applyEffect applies (direction=1) or reverses (direction=-1) the balance
// effect of a settled transaction.
func (s *transactionService) applyEffect(tx *gorm.DB, transaction *models.Transaction, account, toAccount *models.Account, direction float64) error {
	switch transaction.Type {
	case models.TransactionTypeIncome:
		return s.accounts.ApplyBalanceChange(tx, account, direction*transaction.Amount)
	case models.TransactionTypeExpense:
		return s.accounts.ApplyBalanceChange(tx, account, -direction*transaction.Amount)
	case models.TransactionTypeTransfer:
		if err := s.accounts.ApplyBalanceChange(tx, account, -direction*transaction.Amount); err != nil {
			return err
		}
		return s.accounts.ApplyBalanceChange(tx, toAccount, direction*transaction.Amount)
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction type")
	}
}

// GetUserTransactions returns a filtered, paginated transaction list,
// newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		query = query.Where("(account_id = ? OR to_account_id = ?)", *filter.AccountID, *filter.AccountID)
	}
	if filter.Bucket != nil {
		query = query.Where("bucket = ?", *filter.Bucket)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &response, nil
}

// GetTransactionByID retrieves a single transaction owned by the user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect
// when one was applied.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	var account, toAccount *models.Account
	settled := !transaction.IsPending || transaction.IsPaid
	if settled {
		account, err = s.accounts.GetAccountByID(userID, transaction.AccountID)
		if err != nil {
			return err
		}
		if transaction.Type == models.TransactionTypeTransfer && transaction.ToAccountID != nil {
			toAccount, err = s.accounts.GetAccountByID(userID, *transaction.ToAccountID)
			if err != nil {
				return err
			}
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if settled {
			return s.applyEffect(tx, transaction, account, toAccount, -1)
		}
		return nil
	})
}

// PayBill settles a pending bill: marks it paid and applies the balance
// effect that was deferred at creation.
func (s *transactionService) PayBill(userID, transactionID uint) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsPending || transaction.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrNotAPendingBill
	}
	if transaction.IsPaid {
		return nil, apperrors.ErrBillAlreadyPaid
	}

	account, err := s.accounts.GetAccountByID(userID, transaction.AccountID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(transaction).Update("is_paid", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.applyEffect(tx, transaction, account, nil, 1)
	})
	if err != nil {
		return nil, err
	}

	transaction.IsPaid = true
	return transaction, nil
}

// GetPendingBills returns the user's unpaid bills ordered by due date.
func (s *transactionService) GetPendingBills(userID uint) ([]models.Transaction, error) {
	var bills []models.Transaction
	if err := s.db.Where("user_id = ? AND is_pending = ? AND is_paid = ?", userID, true, false).
		Order("due_date ASC, id ASC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetCashflowTimeline builds the daily income/expense calendar around today.
func (s *transactionService) GetCashflowTimeline(userID uint, daysBack, daysForward int) ([]timeline.CashflowDay, error) {
	now := time.Now().In(s.loc)
	from := now.AddDate(0, 0, -(daysBack + 1))
	to := now.AddDate(0, 0, daysForward+1)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return timeline.Cashflow(transactions, daysBack, daysForward, now, s.loc), nil
}
