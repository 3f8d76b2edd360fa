package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ActivityType is the kind of a ledger activity.
type ActivityType string

const (
	ActivityTypeBuy       ActivityType = "BUY"
	ActivityTypeSell      ActivityType = "SELL"
	ActivityTypeDividend  ActivityType = "DIVIDEND"
	ActivityTypeFee       ActivityType = "FEE"
	ActivityTypeInterest  ActivityType = "INTEREST"
	ActivityTypeItem      ActivityType = "ITEM"
	ActivityTypeLiability ActivityType = "LIABILITY"
)

const (
	// ActivityDateLayout is the layout of dates produced for imported activities.
	ActivityDateLayout = "2006-01-02T15:04:05"

	// DatePrefixLength is how much of an activity date takes part in structural matching.
	DatePrefixLength = 18

	tagOpen  = "<sync-trade-transactionID>"
	tagClose = "</sync-trade-transactionID>"
)

// SymbolProfile is the nested instrument description the ledger returns with stored activities.
type SymbolProfile struct {
	Symbol     string `json:"symbol"`
	Currency   string `json:"currency"`
	DataSource string `json:"dataSource"`
}

// Activity is the canonical unit of import into the ledger.
type Activity struct {
	AccountID     string
	Currency      string
	DataSource    string
	Date          string
	Fee           decimal.Decimal
	Quantity      decimal.Decimal
	Symbol        string
	Type          ActivityType
	UnitPrice     decimal.Decimal
	Comment       string
	SymbolProfile *SymbolProfile
}

// ResolvedSymbol returns the direct symbol, or the profile symbol when the direct one is absent.
func (a Activity) ResolvedSymbol() string {
	if a.Symbol != "" {
		return a.Symbol
	}
	if a.SymbolProfile != nil {
		return a.SymbolProfile.Symbol
	}
	return ""
}

// DatePrefix returns the date truncated to DatePrefixLength.
func (a Activity) DatePrefix() string {
	if len(a.Date) <= DatePrefixLength {
		return a.Date
	}
	return a.Date[:DatePrefixLength]
}

// Tag returns the identity tag embedded in the comment, if any.
func (a Activity) Tag() (string, bool) {
	return ExtractTag(a.Comment)
}

// LeadsWithTag reports whether the comment starts with an identity tag,
// the only position a tag match considers.
func (a Activity) LeadsWithTag() bool {
	return strings.HasPrefix(a.Comment, tagOpen)
}

// TransactionTag builds the identity tag for a broker transaction id.
func TransactionTag(transactionID string) string {
	return tagOpen + transactionID + tagClose
}

// ExtractTag finds a complete identity tag inside a comment.
func ExtractTag(comment string) (string, bool) {
	start := strings.Index(comment, tagOpen)
	if start < 0 {
		return "", false
	}
	end := strings.Index(comment[start:], tagClose)
	if end < 0 {
		return "", false
	}
	return comment[start : start+end+len(tagClose)], true
}

// String is used in log lines.
func (a Activity) String() string {
	return fmt.Sprintf("%s %s %s x %s @ %s %s", a.Date, a.Type, a.ResolvedSymbol(), a.Quantity, a.UnitPrice, a.Currency)
}
