package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// AccountSettings describe the ledger account that receives synced activities.
type AccountSettings struct {
	Name         string
	Currency     string
	PlatformID   string
	PlatformName string
}

// AccountBootstrapper finds the sync account in the ledger, creating it when missing.
type AccountBootstrapper struct {
	directory AccountDirectory
	settings  AccountSettings
	logger    zerolog.Logger
}

// NewAccountBootstrapper creates a new AccountBootstrapper.
func NewAccountBootstrapper(directory AccountDirectory, settings AccountSettings, logger zerolog.Logger) *AccountBootstrapper {
	return &AccountBootstrapper{
		directory: directory,
		settings:  settings,
		logger:    logger,
	}
}

// Ensure returns the sync account.
func (b *AccountBootstrapper) Ensure(ctx context.Context) (domain.Account, error) {
	accounts, err := b.directory.ListAccounts(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: list accounts: %w", domain.ErrAccountUnavailable, err)
	}

	for _, acc := range accounts {
		if acc.Name == b.settings.Name {
			return acc, nil
		}
	}

	if err := domain.ValidateAccountName(b.settings.Name); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %w", domain.ErrAccountUnavailable, err)
	}
	if err := domain.ValidateCurrency(b.settings.Currency); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %w", domain.ErrAccountUnavailable, err)
	}

	platformID, err := b.platformID(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		Name:        b.settings.Name,
		Currency:    b.settings.Currency,
		Balance:     decimal.Zero,
		PlatformID:  platformID,
		AccountType: domain.AccountTypeSecurities,
	}

	id, err := b.directory.CreateAccount(ctx, account)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: create account %q: %w", domain.ErrAccountUnavailable, b.settings.Name, err)
	}
	if id == "" {
		return domain.Account{}, fmt.Errorf("%w: ledger returned no id for account %q", domain.ErrAccountUnavailable, b.settings.Name)
	}

	account.ID = id
	b.logger.Info().Str("account_id", id).Str("name", account.Name).Msg("created sync account")
	return account, nil
}

func (b *AccountBootstrapper) platformID(ctx context.Context) (string, error) {
	if b.settings.PlatformID != "" {
		return b.settings.PlatformID, nil
	}
	if b.settings.PlatformName == "" {
		return "", nil
	}

	id, err := b.directory.FindPlatformID(ctx, b.settings.PlatformName)
	if err != nil {
		return "", fmt.Errorf("%w: platform %q: %w", domain.ErrAccountUnavailable, b.settings.PlatformName, err)
	}
	return id, nil
}
