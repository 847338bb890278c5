package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/adapters/dataset"
	"github.com/okian/podium/internal/probe"
	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultBaseURL = "http://localhost:8050"
	defaultRows    = 20000
	defaultSports  = 12
	defaultTimeout = 30 * time.Second
)

var errVerifyFailed = errors.New("verification failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "podium-probe",
		Short:         "Podium probe",
		Long:          `Podium probe generates synthetic medal datasets and verifies a running dashboard server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if verbose {
				return logger.SetLevelString("debug")
			}
			return logger.SetLevelString("warn")
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newGenerateCmd(), newVerifyCmd())
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cfg := probe.GenerateConfig{}
	cmd := &cobra.Command{
		Use:   "generate <path>",
		Short: "Generate a synthetic dataset",
		Long: `Generate a synthetic Olympic dataset with Year, Sport, Team, Sex and Medal columns.

Examples:
  # CSV with default size
  podium-probe generate Olympic_data.csv

  # SQLite database with 100k rows
  podium-probe generate medals.db --format sqlite --rows 100000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]
			medals, err := probe.Generate(cmd.Context(), cfg)
			if err != nil {
				probe.PrintError(cmd.ErrOrStderr(), err)
				return err
			}
			return probe.PrintJSON(cmd.OutOrStdout(), map[string]any{
				"path":   cfg.Path,
				"format": cfg.Format,
				"rows":   cfg.Rows,
				"medals": medals,
			})
		},
	}
	cmd.Flags().StringVar(&cfg.Format, "format", probe.FormatCSV, "Output format: csv or sqlite")
	cmd.Flags().StringVar(&cfg.Table, "table", dataset.DefaultTable, "SQLite table name")
	cmd.Flags().IntVar(&cfg.Rows, "rows", defaultRows, "Athlete rows to generate")
	cmd.Flags().IntVar(&cfg.Sports, "sports", defaultSports, "Number of distinct sports")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Concurrent generators")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	cfg := probe.VerifyConfig{}
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a running server",
		Long: `Verify a running server: every sport option must return three consistent charts.

Examples:
  # Check invariants only
  podium-probe verify --url http://localhost:8050

  # Compare with a local computation over the served dataset
  podium-probe verify --data Olympic_data.csv --selector`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := probe.Verify(cmd.Context(), cfg)
			if err != nil {
				probe.PrintError(cmd.ErrOrStderr(), err)
				return err
			}
			if asJSON {
				err = probe.PrintJSON(cmd.OutOrStdout(), report)
			} else {
				err = probe.PrintReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%w: %d failures", errVerifyFailed, len(report.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", defaultBaseURL, "Base URL of the service")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Concurrent sport checks")
	cmd.Flags().StringVar(&cfg.DataPath, "data", "", "Local dataset to compare against")
	cmd.Flags().StringVar(&cfg.Source, "source", dataset.SourceCSV, "Local dataset source: csv or sqlite")
	cmd.Flags().StringVar(&cfg.Table, "table", dataset.DefaultTable, "Local SQLite table")
	cmd.Flags().BoolVar(&cfg.Selector, "selector", false, "Also exercise the selector transition")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}
