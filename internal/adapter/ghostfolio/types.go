package ghostfolio

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// amount is a decimal rendered as a bare JSON number. The ledger rejects
// quoted numbers, which is how decimal.Decimal marshals by default.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

func (a amount) decimal() decimal.Decimal { return decimal.Decimal(a) }

// importActivity is one element of the import payload.
type importActivity struct {
	AccountID  string `json:"accountId"`
	Comment    string `json:"comment,omitempty"`
	Currency   string `json:"currency"`
	DataSource string `json:"dataSource"`
	Date       string `json:"date"`
	Fee        amount `json:"fee"`
	Quantity   amount `json:"quantity"`
	Symbol     string `json:"symbol"`
	Type       string `json:"type"`
	UnitPrice  amount `json:"unitPrice"`
}

type importRequest struct {
	Activities []importActivity `json:"activities"`
}

// orderActivity is an activity as returned by the order listing.
type orderActivity struct {
	ID            string                `json:"id"`
	AccountID     string                `json:"accountId"`
	Comment       *string               `json:"comment"`
	Date          string                `json:"date"`
	Fee           amount                `json:"fee"`
	Quantity      amount                `json:"quantity"`
	Type          string                `json:"type"`
	UnitPrice     amount                `json:"unitPrice"`
	Symbol        string                `json:"symbol"`
	SymbolProfile *domain.SymbolProfile `json:"SymbolProfile"`
}

type ordersResponse struct {
	Activities []orderActivity `json:"activities"`
}

type accountPayload struct {
	ID          string `json:"id,omitempty"`
	AccountType string `json:"accountType"`
	Balance     amount `json:"balance"`
	Currency    string `json:"currency"`
	IsExcluded  bool   `json:"isExcluded"`
	Name        string `json:"name"`
	PlatformID  string `json:"platformId,omitempty"`
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type infoResponse struct {
	Platforms []platform `json:"platforms"`
}

type userResponse struct {
	Settings map[string]any `json:"settings"`
}

type lookupItem struct {
	Symbol     string `json:"symbol"`
	Currency   string `json:"currency"`
	DataSource string `json:"dataSource"`
	Name       string `json:"name"`
}

type lookupResponse struct {
	Items []lookupItem `json:"items"`
}

func toImportActivity(a domain.Activity) importActivity {
	return importActivity{
		AccountID:  a.AccountID,
		Comment:    a.Comment,
		Currency:   a.Currency,
		DataSource: a.DataSource,
		Date:       a.Date,
		Fee:        amount(a.Fee),
		Quantity:   amount(a.Quantity),
		Symbol:     a.ResolvedSymbol(),
		Type:       string(a.Type),
		UnitPrice:  amount(a.UnitPrice),
	}
}

// toDomain maps a stored activity the way the ledger would accept it back:
// currency and data source come from the symbol profile.
func (o orderActivity) toDomain() domain.Activity {
	act := domain.Activity{
		AccountID:     o.AccountID,
		Date:          o.Date,
		Fee:           o.Fee.decimal(),
		Quantity:      o.Quantity.decimal(),
		Symbol:        o.Symbol,
		Type:          domain.ActivityType(o.Type),
		UnitPrice:     o.UnitPrice.decimal(),
		SymbolProfile: o.SymbolProfile,
	}
	if o.Comment != nil {
		act.Comment = *o.Comment
	}
	if o.SymbolProfile != nil {
		act.Currency = o.SymbolProfile.Currency
		act.DataSource = o.SymbolProfile.DataSource
	}
	return act
}

func toAccountPayload(a domain.Account) accountPayload {
	accountType := a.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeSecurities
	}
	return accountPayload{
		ID:          a.ID,
		AccountType: accountType,
		Balance:     amount(a.Balance),
		Currency:    a.Currency,
		IsExcluded:  a.IsExcluded,
		Name:        a.Name,
		PlatformID:  a.PlatformID,
	}
}

func (p accountPayload) toDomain() domain.Account {
	return domain.Account{
		ID:          p.ID,
		Name:        p.Name,
		Currency:    p.Currency,
		Balance:     p.Balance.decimal(),
		PlatformID:  p.PlatformID,
		AccountType: p.AccountType,
		IsExcluded:  p.IsExcluded,
	}
}
