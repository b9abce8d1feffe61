// Command porchcrew scores weekly NFL stats under the Porch Crew league
// rubric and writes per-position CSV reports.
//
// Usage:
//
//	porchcrew --seasons 2025 --week 8-10
//	porchcrew -s 2025 -w 8 -p "Patrick Mahomes,Josh Allen" -t KC --display
//	porchcrew --summary
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/porchcrew/gridiron/external/nflverse"
	"github.com/porchcrew/gridiron/internal/app"
	"github.com/porchcrew/gridiron/internal/config"
	"github.com/porchcrew/gridiron/internal/observability"
	"github.com/porchcrew/gridiron/internal/platform/id"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/resilience"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts app.RunOptions
	var weekSpec string

	cmd := &cobra.Command{
		Use:           "porchcrew",
		Short:         "Score weekly NFL stats for the Porch Crew fantasy league",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WeekSpec = weekSpec
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntSliceVarP(&opts.Seasons, "seasons", "s", nil, "seasons to score (default: current season)")
	cmd.Flags().StringVarP(&weekSpec, "week", "w", "", `week filter: "8", "8-10", or "8,9,11-13"`)
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "directory for CSV reports")
	cmd.Flags().StringSliceVarP(&opts.Players, "player", "p", nil, "player name queries (fuzzy matched)")
	cmd.Flags().StringSliceVarP(&opts.Teams, "team", "t", nil, "defense/special-teams unit queries")
	cmd.Flags().BoolVarP(&opts.Display, "display", "d", false, "pretty-print tables to stdout")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "write per-identity summary aggregates")

	return cmd
}

func run(ctx context.Context, opts app.RunOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewJSON(cfg.LogLevel)
	if runID, err := id.NewRandomGenerator().NewID(); err == nil {
		logger = logger.With("run_id", runID)
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("profiler stop failed", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Warn("pprof stop failed", "error", err)
		}
	}()

	provider := nflverse.NewClient(nflverse.ClientConfig{
		BaseURL:    cfg.NFLVerseBaseURL,
		Timeout:    cfg.NFLVerseTimeout,
		MaxRetries: cfg.NFLVerseMaxRetries,
		MaxWorkers: cfg.NFLVerseMaxWorkers,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NFLVerseCircuitEnabled,
			FailureThreshold: cfg.NFLVerseCircuitFailureCount,
			OpenTimeout:      cfg.NFLVerseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NFLVerseCircuitHalfOpenMaxReq,
		},
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(cfg, logger, provider).Run(ctx, opts)
}
