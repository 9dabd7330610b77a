package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"yhmonitor/internal/config"
	"yhmonitor/internal/logger"
	"yhmonitor/internal/monitor"
	"yhmonitor/internal/scrape"
	"yhmonitor/internal/snapshot"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanges = 2
)

var (
	flagConfig      string
	flagDataDir     string
	flagDate        string
	flagFormat      string
	flagConcurrency int
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yh-monitor",
		Short: "Check for added and removed yrkeshögskola programs",
		Long: `A CLI tool that watches the yrkeshogskolan.se program listings.
Fetches the configured search pages, keeps a dated snapshot per source and
reports programs added or removed since the previous day.`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML)")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for snapshots (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagDate, "date", "", "Run date as YYYYMMDD (defaults to today)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Sources fetched in parallel (overrides config)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPruneCmd())

	return cmd
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.Storage.DataDir = flagDataDir
	}
	if flagConcurrency > 0 {
		cfg.Concurrency = flagConcurrency
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date := time.Now()
	if flagDate != "" {
		date, err = time.Parse(snapshot.DateLayout, flagDate)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYYMMDD)", flagDate)
		}
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	store, err := snapshot.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	fetcher := scrape.NewFetcher(
		scrape.WithTimeout(cfg.HTTP.Timeout()),
		scrape.WithUserAgent(cfg.FullUserAgent()),
		scrape.WithRateLimit(cfg.HTTP.RequestsPerSecond),
	)

	runner := &monitor.Runner{
		Fetcher:     fetcher,
		Extractor:   scrape.NewExtractor(cfg.HTTP.Origin),
		Store:       store,
		Log:         log,
		Sources:     cfg.Sources,
		Concurrency: cfg.Concurrency,
		Keep:        cfg.Storage.Keep,
	}

	results := runner.Run(cmd.Context(), date)
	_ = log.Sync()

	// Per-source errors go to stderr so stdout stays a clean report.
	if format == FormatText {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", res.Source, res.Err)
			}
		}
	}

	if err := WriteOutput(os.Stdout, NewOutputResult(results), format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if monitor.AllFailed(results) {
		return fmt.Errorf("all sources failed")
	}

	// Set exit code based on whether changes were found
	if monitor.Changed(results) {
		os.Exit(ExitChanges)
	}
	os.Exit(ExitSuccess)

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
