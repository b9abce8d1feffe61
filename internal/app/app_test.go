package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/porchcrew/gridiron/internal/config"
	"github.com/porchcrew/gridiron/internal/domain/playbyplay"
	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/usecase"
)

type stubProvider struct {
	offense []stats.OffenseGame
	kicking []stats.KickingGame
	events  []playbyplay.PlayEvent
	err     error
}

func (s *stubProvider) FetchPlayerStats(ctx context.Context, seasons []int) ([]stats.OffenseGame, error) {
	return s.offense, s.err
}

func (s *stubProvider) FetchKickingStats(ctx context.Context, seasons []int) ([]stats.KickingGame, error) {
	return s.kicking, s.err
}

func (s *stubProvider) FetchPlayEvents(ctx context.Context, seasons []int) ([]playbyplay.PlayEvent, error) {
	return s.events, s.err
}

func fixtureProvider() *stubProvider {
	yds := 55.0
	return &stubProvider{
		offense: []stats.OffenseGame{
			{
				Season: 2025, Week: 8, PlayerID: "00-qb1", PlayerName: "Patrick Mahomes",
				Team: "KC", Position: "QB", PassingYards: 300, PassingTDs: 3,
			},
		},
		kicking: []stats.KickingGame{
			{
				Season: 2025, Week: 8, PlayerID: "00-k1", PlayerName: "Harrison Butker",
				Team: "KC", PATMade: 4, FGMade30_39: 2,
			},
		},
		events: []playbyplay.PlayEvent{
			{
				Season: 2025, Week: 8, GameID: "2025_08_LV_KC",
				HomeTeam: "KC", AwayTeam: "LV", PosTeam: "KC", DefTeam: "LV",
				PlayType: "pass", Pass: true, Touchdown: true, PassTouchdown: true,
				PasserID: "00-qb1", ReceiverID: "00-wr1", YardsGained: &yds,
				TotalHomeScore: 28, TotalAwayScore: 13,
			},
		},
	}
}

func newTestApp(t *testing.T, provider Provider) (*App, string, *strings.Builder) {
	t.Helper()
	dir := t.TempDir()
	a := New(config.Config{DefaultSeason: 2025, OutputDir: dir}, logging.NewNop(), provider)
	var out strings.Builder
	a.stdout = &out
	return a, dir, &out
}

func TestApp_RunWritesPositionFiles(t *testing.T) {
	t.Parallel()

	a, dir, _ := newTestApp(t, fixtureProvider())
	err := a.Run(context.Background(), RunOptions{Seasons: []int{2025}, OutputDir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"qb_stats.csv", "k_stats.csv", "dst_stats.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	// No rows for these classes, so no files either.
	for _, name := range []string{"rb_stats.csv", "wr_te_stats.csv", "combined_stats.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("unexpected %s (err=%v)", name, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "qb_stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// 0.04*300 + 6*3 + the 55-yard touchdown bonus of 3.
	if !strings.Contains(string(raw), "33") {
		t.Fatalf("qb csv missing scored points:\n%s", raw)
	}
}

func TestApp_RunDefaultsSeasonAndDir(t *testing.T) {
	t.Parallel()

	a, dir, _ := newTestApp(t, fixtureProvider())
	if err := a.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "qb_stats.csv")); err != nil {
		t.Fatalf("default output dir not used: %v", err)
	}
}

func TestApp_RunIdentityFilterWritesCombined(t *testing.T) {
	t.Parallel()

	a, dir, out := newTestApp(t, fixtureProvider())
	err := a.Run(context.Background(), RunOptions{
		Seasons:   []int{2025},
		OutputDir: dir,
		WeekSpec:  "8",
		Players:   []string{"mahomes", "Zzyzx Nobody"},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "combined_stats_week_8.csv")); err != nil {
		t.Fatalf("expected combined file: %v", err)
	}
	if !strings.Contains(out.String(), `no match for "Zzyzx Nobody"`) {
		t.Fatalf("missing unmatched warning: %q", out.String())
	}
}

func TestApp_RunEmptyIsStatus(t *testing.T) {
	t.Parallel()

	a, dir, out := newTestApp(t, fixtureProvider())
	err := a.Run(context.Background(), RunOptions{
		Seasons:   []int{2025},
		OutputDir: dir,
		WeekSpec:  "17",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "no rows matched") {
		t.Fatalf("missing empty-run message: %q", out.String())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no output files, got %v", entries)
	}
}

func TestApp_RunRejectsBadWeekSpec(t *testing.T) {
	t.Parallel()

	provider := fixtureProvider()
	a, dir, _ := newTestApp(t, provider)
	err := a.Run(context.Background(), RunOptions{
		Seasons:   []int{2025},
		OutputDir: dir,
		WeekSpec:  "8-x",
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestApp_RunSummary(t *testing.T) {
	t.Parallel()

	a, dir, _ := newTestApp(t, fixtureProvider())
	err := a.Run(context.Background(), RunOptions{
		Seasons:   []int{2025},
		OutputDir: dir,
		Summary:   true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatalf("expected summary file: %v", err)
	}
	if !strings.Contains(string(raw), "Patrick Mahomes") {
		t.Fatalf("summary missing identities:\n%s", raw)
	}
}

func TestApp_ProviderFailureSurfaces(t *testing.T) {
	t.Parallel()

	provider := fixtureProvider()
	provider.err = errors.New("boom")
	a, dir, _ := newTestApp(t, provider)

	err := a.Run(context.Background(), RunOptions{Seasons: []int{2025}, OutputDir: dir})
	if err == nil || !strings.Contains(err.Error(), "load provider datasets") {
		t.Fatalf("got %v, want wrapped provider failure", err)
	}
}
