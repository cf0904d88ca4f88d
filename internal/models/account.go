package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
)

// Account represents a financial account in the system. Balance is a
// materialized running total: every settled transaction touching the
// account mutates it, and it is never recomputed from history on read.
type Account struct {
	Base
	UserID   uint        `gorm:"not null;index" json:"user_id"`
	Name     string      `gorm:"not null" json:"name"`
	Type     AccountType `gorm:"not null" json:"type"`
	Balance  float64     `gorm:"not null;default:0" json:"balance"`
	Currency string      `gorm:"not null;default:'COP'" json:"currency"`
	Icon     string      `json:"icon,omitempty"`
	Color    string      `json:"color,omitempty"`
	IsActive bool        `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
