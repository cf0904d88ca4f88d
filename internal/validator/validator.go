// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	dateKeyRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// validCurrencies contains the ISO 4217 currency codes accepted for accounts.
var validCurrencies = map[string]bool{
	"ARS": true, "AUD": true, "BOB": true, "BRL": true, "CAD": true,
	"CHF": true, "CLP": true, "CNY": true, "COP": true, "CRC": true,
	"DKK": true, "DOP": true, "EUR": true, "GBP": true, "GTQ": true,
	"HKD": true, "HNL": true, "INR": true, "JPY": true, "KRW": true,
	"MXN": true, "NIO": true, "NOK": true, "NZD": true, "PAB": true,
	"PEN": true, "PYG": true, "SEK": true, "SGD": true, "USD": true,
	"UYU": true, "VES": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("budget_bucket", validateBudgetBucket)
		_ = v.RegisterValidation("trade_action", validateTradeAction)
		_ = v.RegisterValidation("trade_outcome", validateTradeOutcome)
		_ = v.RegisterValidation("custody_party", validateCustodyParty)
		_ = v.RegisterValidation("month_key", validateMonthKey)
		_ = v.RegisterValidation("date_key", validateDateKey)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "transfer":
		return true
	}
	return false
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "bank", "savings", "credit_card":
		return true
	}
	return false
}

func validateBudgetBucket(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "essential", "investment", "stability", "rewards", "other":
		return true
	}
	return false
}

func validateTradeAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CALL", "PUT":
		return true
	}
	return false
}

func validateTradeOutcome(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "WIN", "LOSS":
		return true
	}
	return false
}

func validateCustodyParty(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MOM", "DAD":
		return true
	}
	return false
}

func validateMonthKey(fl validator.FieldLevel) bool {
	return monthKeyRegex.MatchString(fl.Field().String())
}

func validateDateKey(fl validator.FieldLevel) bool {
	return dateKeyRegex.MatchString(fl.Field().String())
}
