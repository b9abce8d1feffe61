package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/porchcrew/gridiron/internal/config"
	"github.com/porchcrew/gridiron/internal/domain/playbyplay"
	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/output"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/usecase"
)

// Provider supplies the three raw datasets one run consumes.
type Provider interface {
	FetchPlayerStats(ctx context.Context, seasons []int) ([]stats.OffenseGame, error)
	FetchKickingStats(ctx context.Context, seasons []int) ([]stats.KickingGame, error)
	FetchPlayEvents(ctx context.Context, seasons []int) ([]playbyplay.PlayEvent, error)
}

// RunOptions are the caller-facing knobs for one report run.
type RunOptions struct {
	Seasons   []int `validate:"required,min=1,dive,gte=1999"`
	WeekSpec  string
	Players   []string `validate:"dive,required"`
	Teams     []string `validate:"dive,required"`
	OutputDir string   `validate:"required"`
	Display   bool
	Summary   bool
}

type App struct {
	cfg      config.Config
	logger   *logging.Logger
	provider Provider
	validate *validator.Validate
	reports  *usecase.ReportService
	summary  *usecase.SummaryService
	stdout   io.Writer
}

func New(cfg config.Config, logger *logging.Logger, provider Provider) *App {
	if logger == nil {
		logger = logging.Default()
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		validate: validator.New(),
		reports:  usecase.NewReportService(logger),
		summary:  usecase.NewSummaryService(logger),
		stdout:   os.Stdout,
	}
}

// Run executes one scoring run end to end: load the provider datasets
// concurrently, derive bonuses and defense lines from play-by-play, then
// assemble, score, and persist the report.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if len(opts.Seasons) == 0 {
		opts.Seasons = []int{a.cfg.DefaultSeason}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = a.cfg.OutputDir
	}
	if err := a.validate.StructCtx(ctx, opts); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	weeks, err := usecase.ParseWeekSpec(opts.WeekSpec)
	if err != nil {
		return err
	}

	var (
		offense []stats.OffenseGame
		kicking []stats.KickingGame
		events  []playbyplay.PlayEvent
	)
	loads := pool.New().WithErrors().WithContext(ctx)
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		offense, loadErr = a.provider.FetchPlayerStats(ctx, opts.Seasons)
		return loadErr
	})
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		kicking, loadErr = a.provider.FetchKickingStats(ctx, opts.Seasons)
		return loadErr
	})
	loads.Go(func(ctx context.Context) error {
		var loadErr error
		events, loadErr = a.provider.FetchPlayEvents(ctx, opts.Seasons)
		return loadErr
	})
	if err := loads.Wait(); err != nil {
		return fmt.Errorf("load provider datasets: %w", err)
	}
	a.logger.InfoContext(ctx, "datasets loaded",
		"player_lines", len(offense), "kicker_lines", len(kicking), "plays", len(events))

	in := usecase.ReportInput{
		Offense: offense,
		Kicking: kicking,
		Defense: playbyplay.DeriveDefense(events),
		Bonuses: playbyplay.DeriveBonuses(events),
	}
	req := usecase.ReportRequest{
		Seasons: opts.Seasons,
		Weeks:   weeks,
		Players: opts.Players,
		Teams:   opts.Teams,
	}

	report, err := a.reports.Build(ctx, in, req)
	if err != nil {
		return err
	}
	for _, query := range report.Unmatched {
		fmt.Fprintf(a.stdout, "no match for %q, skipping\n", query)
	}
	if report.Empty {
		fmt.Fprintln(a.stdout, "no rows matched")
		return nil
	}

	writer := output.NewWriter(opts.OutputDir, a.logger)
	for _, class := range []stats.PositionClass{
		stats.ClassQB, stats.ClassRB, stats.ClassWRTE, stats.ClassK, stats.ClassDST,
	} {
		tbl := report.Positions[class]
		if tbl.Len() == 0 {
			continue
		}
		if _, err := writer.SaveTable(output.PositionFileName(class, weeks), tbl); err != nil {
			return err
		}
		if opts.Display {
			if err := output.Display(a.stdout, string(class), tbl); err != nil {
				return err
			}
		}
	}

	if len(opts.Players) > 0 || len(opts.Teams) > 0 {
		if _, err := writer.SaveTable(output.CombinedFileName(weeks), report.Combined); err != nil {
			return err
		}
		if opts.Display {
			if err := output.Display(a.stdout, "combined", report.Combined); err != nil {
				return err
			}
		}
	}

	if opts.Summary {
		summaryTable, err := a.summary.Aggregate(ctx, report.Combined, weeks)
		if err != nil {
			return err
		}
		if _, err := writer.SaveTable(output.SummaryFileName(weeks), summaryTable); err != nil {
			return err
		}
		if opts.Display {
			if err := output.Display(a.stdout, "summary", summaryTable); err != nil {
				return err
			}
		}
	}

	return nil
}
