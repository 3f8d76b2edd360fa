package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidActivity    = errors.New("invalid activity")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
)

// Valid currency codes (ISO 4217) plus the minor units quote feeds use.
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "DKK": true, "PLN": true, "HKD": true,
	"GBp": true, "ILA": true, "ZAc": true,
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates currency code. Minor units are case sensitive.
func ValidateCurrency(currency string) error {
	currency = strings.TrimSpace(currency)

	if !validCurrencies[currency] && !validCurrencies[strings.ToUpper(currency)] {
		return fmt.Errorf("%w: %s is not a supported currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateActivity checks the invariants of an activity before it is imported.
func ValidateActivity(a Activity) error {
	if a.AccountID == "" {
		return fmt.Errorf("%w: missing account id", ErrInvalidActivity)
	}

	if a.ResolvedSymbol() == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidActivity)
	}

	if a.Quantity.IsNegative() {
		return fmt.Errorf("%w: negative quantity %s", ErrInvalidActivity, a.Quantity)
	}

	if a.Currency == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidActivity)
	}

	if len(a.Date) < len(time.DateOnly) {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidActivity, a.Date)
	}
	if _, err := time.Parse(time.DateOnly, a.Date[:len(time.DateOnly)]); err != nil {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidActivity, a.Date)
	}

	return nil
}
