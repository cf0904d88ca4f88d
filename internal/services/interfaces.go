package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Rodeztrading/Dashboard/internal/allocation"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/timeline"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// AccountUpdateFields holds optional account fields for partial updates.
type AccountUpdateFields struct {
	Name     *string
	Icon     *string
	Color    *string
	IsActive *bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID uint, name string, accountType models.AccountType, currency, icon, color string, initialBalance float64) (*models.Account, error)
	GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID uint) (*models.Account, error)
	UpdateAccount(userID, accountID uint, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID uint) error
	ApplyBalanceChange(tx *gorm.DB, account *models.Account, delta float64) error
}

// CategoryServicer defines the contract for category-related business logic.
// The top-level category set is closed: it is seeded once per user and
// only names, colors and subcategories can change afterwards.
type CategoryServicer interface {
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error)
	AddSubcategory(userID, categoryID uint, name string) (*models.Subcategory, error)
	RemoveSubcategory(userID, categoryID, subcategoryID uint) error
}

// TransactionInput carries the fields accepted when creating a transaction.
type TransactionInput struct {
	AccountID          uint
	ToAccountID        *uint
	Type               models.TransactionType
	Amount             float64
	Description        string
	Date               time.Time
	CategoryID         *uint
	SubcategoryID      *uint
	CategoryName       string
	IsPending          bool
	DueDate            *time.Time
	Bucket             models.BudgetBucket
	InvestmentName     string
	IsInvestmentReturn bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *uint
	AccountID  *uint
	Bucket     *models.BudgetBucket
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	PayBill(userID, transactionID uint) (*models.Transaction, error)
	GetPendingBills(userID uint) ([]models.Transaction, error)
	GetCashflowTimeline(userID uint, daysBack, daysForward int) ([]timeline.CashflowDay, error)
}

// BudgetServicer computes the monthly financial summary.
type BudgetServicer interface {
	GetFinancialSummary(userID uint, month string) (*allocation.Summary, error)
}

// TradeInput carries the fields accepted when journaling a trade.
type TradeInput struct {
	ImageData      string
	ImageMimeType  string
	ResultImage    string
	ResultMimeType string
	Action         models.TradeAction
	Outcome        models.TradeOutcome
	AmountInvested float64
	Payout         float64
}

// TradeServicer defines the contract for the trading journal.
type TradeServicer interface {
	CreateTrade(ctx context.Context, userID uint, input TradeInput) (*models.Trade, error)
	GetUserTrades(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	DeleteTrade(ctx context.Context, userID, tradeID uint) error
	GetTradeTimeline(userID uint, daysBack, daysForward int) ([]timeline.TradingDay, error)
}

// CustodyDay is one resolved day of the custody calendar.
type CustodyDay struct {
	Date                string              `json:"date"`
	Responsible         models.CustodyParty `json:"responsible"`
	IsOverride          bool                `json:"is_override"`
	OriginalResponsible models.CustodyParty `json:"original_responsible,omitempty"`
}

// CustodyServicer defines the contract for the custody calendar.
type CustodyServicer interface {
	GetMonth(userID uint, month string) ([]CustodyDay, error)
	GetDay(userID uint, date string) (*CustodyDay, error)
	ToggleDay(userID uint, date string) (*CustodyDay, error)
	DeleteOverride(userID uint, date string) error
}
