package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/ledgersync/internal/adapter/http/dto"
	"github.com/iho/ledgersync/internal/adapter/http/handler"
	"github.com/iho/ledgersync/internal/app"
	"github.com/iho/ledgersync/internal/infrastructure/config"
	"github.com/iho/ledgersync/internal/infrastructure/logger"
	"github.com/iho/ledgersync/internal/infrastructure/postgres"
	"github.com/iho/ledgersync/internal/usecase"
)

// services is what the commands need from a wired pipeline.
type services struct {
	sync  handler.SyncService
	plan  handler.PlanService
	view  usecase.ViewSettings
	close func()
}

// loadServices is replaced in tests.
var loadServices = func(ctx context.Context) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.ValidateSync(); err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &services{sync: a.Sync, plan: a.Plan, view: a.Ledger, close: a.Close}, nil
}

var runMigration = func(direction string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	if direction == "down" {
		return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
	}
	return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asJSON bool

	rootCmd := &cobra.Command{
		Use:          "ledgersync",
		Short:        "Sync IBKR trades into Ghostfolio",
		Long:         `Imports trades and the cash balance from an IBKR Flex query into a Ghostfolio account.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print machine-readable JSON")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Import new trades and update the cash balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(s *services) error {
				run, err := s.sync.Run(cmd.Context())
				if run != nil {
					if asJSON {
						printJSON(cmd.OutOrStdout(), dto.SyncRunFromDomain(run))
					} else {
						printRun(cmd.OutOrStdout(), dto.SyncRunFromDomain(run))
					}
				}
				return err
			})
		},
	}

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a sync would import, without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(s *services) error {
				report, err := s.plan.GenerateReconciliationReport(cmd.Context())
				if err != nil {
					return err
				}
				plan := dto.PlanFromReport(report)
				if asJSON {
					printJSON(cmd.OutOrStdout(), plan)
					return nil
				}
				printPlan(cmd.OutOrStdout(), plan)
				return nil
			})
		},
	}

	var limit int
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(s *services) error {
				runs, err := s.sync.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				resp := dto.SyncRunsFromDomain(runs)
				if asJSON {
					printJSON(cmd.OutOrStdout(), dto.ListRunsResponse{Runs: resp, Total: len(resp)})
					return nil
				}
				for _, r := range resp {
					printRun(cmd.OutOrStdout(), r)
				}
				return nil
			})
		},
	}
	runsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")

	viewCmd := &cobra.Command{
		Use:       "restricted-view on|off|status",
		Short:     "Toggle the Ghostfolio restricted view",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(s *services) error {
				if args[0] != "status" {
					if err := s.view.SetRestrictedView(cmd.Context(), args[0] == "on"); err != nil {
						return err
					}
				}
				enabled, err := s.view.IsRestrictedView(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restricted view: %s\n", onOff(enabled))
				return nil
			})
		},
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the run history schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(args[0])
		},
	}

	rootCmd.AddCommand(syncCmd, planCmd, runsCmd, viewCmd, migrateCmd)
	return rootCmd
}

func withServices(cmd *cobra.Command, fn func(*services) error) error {
	s, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	if s.close != nil {
		defer s.close()
	}
	return fn(s)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func printRun(w io.Writer, r *dto.SyncRunResponse) {
	fmt.Fprintf(w, "%s  %-15s  normalized=%d diff=%d imported=%d cash=%s",
		r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, r.Normalized, r.Diff, r.Imported, r.CashBalance)
	if r.Error != "" {
		fmt.Fprintf(w, "  error=%s", truncate(r.Error, 80))
	}
	fmt.Fprintln(w)
}

func printPlan(w io.Writer, p *dto.PlanResponse) {
	if !p.AccountExists {
		fmt.Fprintln(w, "Account does not exist yet; it will be created on the first sync.")
	}
	fmt.Fprintf(w, "Existing: %d  Normalized: %d  Pending: %d  Ledger only: %d\n",
		p.Existing, p.Normalized, len(p.Pending), p.LedgerOnly)
	fmt.Fprintf(w, "Cash: recorded %s, broker %s\n", p.RecordedCash, p.BrokerCash)
	for category, n := range p.Skipped {
		fmt.Fprintf(w, "Skipped %s trades: %d\n", category, n)
	}

	if len(p.Pending) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tTYPE\tSYMBOL\tQTY\tPRICE\tFEE\tCOMMENT")
		for _, a := range p.Pending {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.Date, a.Type, a.Symbol, a.Quantity, a.UnitPrice, a.Fee, truncate(a.Comment, 40))
		}
		tw.Flush()
	}

	if p.InSync {
		fmt.Fprintln(w, "Ledger is in sync.")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

