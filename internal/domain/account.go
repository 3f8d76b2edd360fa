package domain

import (
	"github.com/shopspring/decimal"
)

// AccountTypeSecurities is the ledger account type used for broker accounts.
const AccountTypeSecurities = "SECURITIES"

// Account is a ledger account that receives synced activities.
type Account struct {
	ID          string
	Name        string
	Currency    string
	Balance     decimal.Decimal
	PlatformID  string
	AccountType string
	IsExcluded  bool
}

// WithBalance returns a copy of the account carrying a new cash balance.
func (a Account) WithBalance(balance decimal.Decimal) Account {
	a.Balance = balance
	if a.AccountType == "" {
		a.AccountType = AccountTypeSecurities
	}
	return a
}
