// Package allocation computes the monthly financial summary under the
// 50/25/15/10 bucket strategy.
//
// Essential is a use-it-or-lose-it pool: its credits and debits only
// count when they fall in the month being viewed. Investment, stability
// and rewards are long-horizon pools that accumulate across all months
// regardless of which month is on screen.
//
// Everything in this package is a pure function over already-loaded
// slices; callers are responsible for supplying a consistent snapshot.
package allocation

import (
	"fmt"
	"time"

	"github.com/Rodeztrading/Dashboard/internal/models"
)

// Income split shares. The four non-other shares sum to 1.
const (
	ShareEssential  = 0.50
	ShareInvestment = 0.25
	ShareStability  = 0.15
	ShareRewards    = 0.10
)

// Summary is the financial summary for one target month.
type Summary struct {
	TotalBalance       float64                         `json:"total_balance"`
	MonthlyIncome      float64                         `json:"monthly_income"`
	MonthlyExpenses    float64                         `json:"monthly_expenses"`
	NetBalance         float64                         `json:"net_balance"`
	PendingBillsAmount float64                         `json:"pending_bills_amount"`
	Buckets            map[models.BudgetBucket]float64 `json:"buckets"`
}

// MalformedTransactionError reports a transaction that cannot be fed
// into the summary math. Silently skipping it would corrupt bucket
// totals without signal, so the whole computation fails instead.
type MalformedTransactionError struct {
	ID     uint
	Reason string
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("malformed transaction %d: %s", e.ID, e.Reason)
}

// ResolveBucket maps a transaction to a fully-resolved bucket.
// Expenses without a bucket default to essential; values outside the
// known set collapse to other rather than failing the month.
func ResolveBucket(tx models.Transaction) models.BudgetBucket {
	switch tx.Bucket {
	case models.BucketEssential, models.BucketInvestment, models.BucketStability, models.BucketRewards, models.BucketOther:
		return tx.Bucket
	case "":
		return models.BucketEssential
	default:
		return models.BucketOther
	}
}

func validate(tx models.Transaction) error {
	if tx.Date.IsZero() {
		return &MalformedTransactionError{ID: tx.ID, Reason: "missing date"}
	}
	if tx.Amount < 0 {
		return &MalformedTransactionError{ID: tx.ID, Reason: "negative amount"}
	}
	switch tx.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeTransfer:
		return nil
	default:
		return &MalformedTransactionError{ID: tx.ID, Reason: fmt.Sprintf("unknown type %q", tx.Type)}
	}
}

// inMonth reports whether the transaction's civil date in loc falls in
// the target month.
func inMonth(tx models.Transaction, year int, month time.Month, loc *time.Location) bool {
	d := tx.Date.In(loc)
	return d.Year() == year && d.Month() == month
}

// Summarize reduces the full transaction history (already filtered to
// dates at or before the end of the target month) into a Summary.
//
// Total balance comes straight from the account running totals, never
// from replaying transactions. Unpaid pending bills are excluded from
// every total except PendingBillsAmount, which reports the target
// month's unpaid bills separately.
func Summarize(accounts []models.Account, transactions []models.Transaction, year int, month time.Month, loc *time.Location) (*Summary, error) {
	s := &Summary{
		Buckets: map[models.BudgetBucket]float64{
			models.BucketEssential:  0,
			models.BucketInvestment: 0,
			models.BucketStability:  0,
			models.BucketRewards:    0,
			models.BucketOther:      0,
		},
	}

	for _, acc := range accounts {
		s.TotalBalance += acc.Balance
	}

	for _, tx := range transactions {
		if err := validate(tx); err != nil {
			return nil, err
		}

		targetMonth := inMonth(tx, year, month, loc)

		if tx.IsPending && !tx.IsPaid {
			if targetMonth && tx.Type == models.TransactionTypeExpense {
				s.PendingBillsAmount += tx.Amount
			}
			continue
		}

		switch tx.Type {
		case models.TransactionTypeIncome:
			if targetMonth {
				s.MonthlyIncome += tx.Amount
			}
			if tx.IsInvestmentReturn {
				// Returns flow back into the investment pool in full,
				// whatever month they land in.
				s.Buckets[models.BucketInvestment] += tx.Amount
				continue
			}
			if targetMonth {
				s.Buckets[models.BucketEssential] += tx.Amount * ShareEssential
			}
			s.Buckets[models.BucketInvestment] += tx.Amount * ShareInvestment
			s.Buckets[models.BucketStability] += tx.Amount * ShareStability
			s.Buckets[models.BucketRewards] += tx.Amount * ShareRewards

		case models.TransactionTypeExpense:
			if targetMonth {
				s.MonthlyExpenses += tx.Amount
			}
			bucket := ResolveBucket(tx)
			if bucket == models.BucketEssential {
				if targetMonth {
					s.Buckets[models.BucketEssential] -= tx.Amount
				}
			} else {
				s.Buckets[bucket] -= tx.Amount
			}

		case models.TransactionTypeTransfer:
			// Moves money between accounts; bucket-neutral.
		}
	}

	s.NetBalance = s.MonthlyIncome - s.MonthlyExpenses
	return s, nil
}

// Replenishment constants for stability-fund borrowing.
const (
	ReplenishmentPrefix   = "Reponer: "
	ReplenishmentCategory = "Deuda a Fondo de Estabilidad"
	replenishmentTermDays = 30
)

// ReplenishmentFor builds the pending bill that repays a withdrawal
// from the stability fund. Borrowing from the fund must be repaid
// within 30 days, so spending against the stability bucket generates a
// linked unpaid expense of the same amount.
//
// Returns nil when the expense does not touch the stability bucket or
// is itself a pending bill.
func ReplenishmentFor(tx models.Transaction) *models.Transaction {
	if tx.Type != models.TransactionTypeExpense {
		return nil
	}
	if ResolveBucket(tx) != models.BucketStability {
		return nil
	}
	if tx.IsPending && !tx.IsPaid {
		return nil
	}

	due := tx.Date.AddDate(0, 0, replenishmentTermDays)
	return &models.Transaction{
		UserID:       tx.UserID,
		AccountID:    tx.AccountID,
		Type:         models.TransactionTypeExpense,
		Amount:       tx.Amount,
		Description:  ReplenishmentPrefix + tx.Description,
		CategoryName: ReplenishmentCategory,
		Date:         tx.Date,
		IsPending:    true,
		DueDate:      &due,
	}
}
