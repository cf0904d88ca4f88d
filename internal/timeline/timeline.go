// Package timeline builds fixed windows of per-day aggregates around a
// reference day, for the trading journal and the cashflow view. The
// window is recomputed in full on every call; nothing is cached.
package timeline

import (
	"math"
	"time"

	"github.com/Rodeztrading/Dashboard/internal/models"
)

// DayStatus classifies a day relative to the reference day. Weekends
// win over everything else.
type DayStatus string

const (
	StatusPending DayStatus = "PENDING"
	StatusActive  DayStatus = "ACTIVE"
	StatusClosed  DayStatus = "CLOSED"
	StatusWeekend DayStatus = "WEEKEND"
)

// TradingDay aggregates one calendar day of trades.
type TradingDay struct {
	Date      string         `json:"date"`
	Status    DayStatus      `json:"status"`
	PnL       float64        `json:"pnl"`
	ITM       int            `json:"itm"`
	OTM       int            `json:"otm"`
	DayOfWeek int            `json:"day_of_week"`
	Trades    []models.Trade `json:"trades"`
}

// CashflowDay aggregates one calendar day of transactions. Transfers
// are excluded from both sides.
type CashflowDay struct {
	Date      string    `json:"date"`
	Status    DayStatus `json:"status"`
	Income    float64   `json:"income"`
	Expenses  float64   `json:"expenses"`
	Net       float64   `json:"net"`
	DayOfWeek int       `json:"day_of_week"`
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func statusFor(day time.Time, todayKey string, loc *time.Location) DayStatus {
	wd := day.Weekday()
	key := dayKey(day, loc)
	switch {
	case wd == time.Saturday || wd == time.Sunday:
		return StatusWeekend
	case key == todayKey:
		return StatusActive
	case key < todayKey:
		return StatusClosed
	default:
		return StatusPending
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Trades produces one TradingDay per calendar day in
// [now-daysBack, now+daysForward], inclusive. WIN counts toward itm and
// credits amountInvested*(payout/100) to pnl; LOSS counts toward otm
// and debits amountInvested. PnL is rounded to 2 decimals.
func Trades(trades []models.Trade, daysBack, daysForward int, now time.Time, loc *time.Location) []TradingDay {
	byDay := make(map[string][]models.Trade)
	for _, tr := range trades {
		key := dayKey(tr.CreatedAt, loc)
		byDay[key] = append(byDay[key], tr)
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	todayKey := dayKey(today, loc)

	days := make([]TradingDay, 0, daysBack+daysForward+1)
	for i := -daysBack; i <= daysForward; i++ {
		day := today.AddDate(0, 0, i)
		key := dayKey(day, loc)
		dayTrades := byDay[key]

		var pnl float64
		var itm, otm int
		for _, tr := range dayTrades {
			if tr.Outcome == models.TradeOutcomeWin {
				pnl += tr.AmountInvested * (tr.Payout / 100)
				itm++
			} else {
				pnl -= tr.AmountInvested
				otm++
			}
		}

		if dayTrades == nil {
			dayTrades = []models.Trade{}
		}

		days = append(days, TradingDay{
			Date:      key,
			Status:    statusFor(day, todayKey, loc),
			PnL:       round2(pnl),
			ITM:       itm,
			OTM:       otm,
			DayOfWeek: int(day.Weekday()),
			Trades:    dayTrades,
		})
	}
	return days
}

// Cashflow produces one CashflowDay per calendar day in
// [now-daysBack, now+daysForward], inclusive. Pending unpaid bills are
// skipped; transfers affect neither income nor expenses.
func Cashflow(transactions []models.Transaction, daysBack, daysForward int, now time.Time, loc *time.Location) []CashflowDay {
	type sums struct{ income, expenses float64 }
	byDay := make(map[string]*sums)
	for _, tx := range transactions {
		if tx.IsPending && !tx.IsPaid {
			continue
		}
		key := dayKey(tx.Date, loc)
		s := byDay[key]
		if s == nil {
			s = &sums{}
			byDay[key] = s
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.income += tx.Amount
		case models.TransactionTypeExpense:
			s.expenses += tx.Amount
		}
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	todayKey := dayKey(today, loc)

	days := make([]CashflowDay, 0, daysBack+daysForward+1)
	for i := -daysBack; i <= daysForward; i++ {
		day := today.AddDate(0, 0, i)
		key := dayKey(day, loc)

		var income, expenses float64
		if s := byDay[key]; s != nil {
			income = s.income
			expenses = s.expenses
		}

		days = append(days, CashflowDay{
			Date:      key,
			Status:    statusFor(day, todayKey, loc),
			Income:    round2(income),
			Expenses:  round2(expenses),
			Net:       round2(income - expenses),
			DayOfWeek: int(day.Weekday()),
		})
	}
	return days
}
