package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// CashPools are the cash report pools summed into the account balance.
var CashPools = []string{domain.CashPoolEndingCash, domain.CashPoolEndingCashPaxos}

// CashResult describes a cash reconciliation.
type CashResult struct {
	Total   decimal.Decimal
	Updated bool
}

// CashReconciler pushes the broker's cash balance onto the ledger account.
type CashReconciler struct {
	updater AccountUpdater
	logger  zerolog.Logger
}

// NewCashReconciler creates a new CashReconciler.
func NewCashReconciler(updater AccountUpdater, logger zerolog.Logger) *CashReconciler {
	return &CashReconciler{
		updater: updater,
		logger:  logger,
	}
}

// SumCash adds up the known pools of every entry. Missing pools count as zero.
func (c *CashReconciler) SumCash(entries []domain.CashReportEntry) decimal.Decimal {
	total := decimal.Zero
	if len(entries) == 0 {
		c.logger.Info().Msg("no cash report in broker export")
	}

	for _, entry := range entries {
		for _, pool := range CashPools {
			amount, ok := entry.Pools[pool]
			if !ok {
				c.logger.Info().Str("pool", pool).Str("currency", entry.Currency).Msg("cash pool missing, counting as zero")
				continue
			}
			total = total.Add(amount)
		}
	}

	return total
}

// Reconcile sets the account balance to the summed cash.
// A total of exactly zero is treated as missing data and never written.
func (c *CashReconciler) Reconcile(ctx context.Context, account domain.Account, entries []domain.CashReportEntry) (*CashResult, error) {
	total := c.SumCash(entries)
	result := &CashResult{Total: total}

	if total.IsZero() {
		c.logger.Info().Str("account_id", account.ID).Msg("no cash retrieved, balance left untouched")
		return result, nil
	}

	if err := c.updater.UpdateAccount(ctx, account.WithBalance(total)); err != nil {
		return result, fmt.Errorf("update balance of account %s to %s: %w", account.ID, total, err)
	}

	result.Updated = true
	c.logger.Info().Str("account_id", account.ID).Str("balance", total.String()).Msg("account cash updated")
	return result, nil
}
