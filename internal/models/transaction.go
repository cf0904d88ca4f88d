package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// BudgetBucket classifies a transaction under the 50/25/15/10
// allocation strategy. It is orthogonal to Category.
type BudgetBucket string

const (
	BucketEssential  BudgetBucket = "essential"
	BucketInvestment BudgetBucket = "investment"
	BucketStability  BudgetBucket = "stability"
	BucketRewards    BudgetBucket = "rewards"
	BucketOther      BudgetBucket = "other"
)

// Transaction represents a financial movement on an account.
//
// Date is the semantic transaction date chosen by the user; CreatedAt
// (from Base) is the record insertion time. A transaction with
// IsPending=true and IsPaid=false is an unpaid bill: it is excluded
// from balances and summary totals until settled.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AccountID   uint            `gorm:"not null" json:"account_id"`
	ToAccountID *uint           `json:"to_account_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	CategoryID    *uint  `json:"category_id,omitempty"`
	SubcategoryID *uint  `json:"subcategory_id,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`

	// Pending bills
	IsPending bool       `gorm:"default:false" json:"is_pending"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	IsPaid    bool       `gorm:"default:false" json:"is_paid"`

	// Budget bucket classification; empty means unassigned and resolves
	// to essential for expenses.
	Bucket BudgetBucket `json:"bucket,omitempty"`

	// Investment tracking
	InvestmentName     string `json:"investment_name,omitempty"`
	IsInvestmentReturn bool   `gorm:"default:false" json:"is_investment_return"`

	Account     Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	ToAccount   *Account     `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
}
