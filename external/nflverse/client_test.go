package nflverse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
	})
	return client, srv
}

func TestFetchPlayerStats_MapsAndFansOutPerSeason(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/player_stats/player_stats_2024.json":
			_, _ = w.Write([]byte(`[
				{"week": 1, "player_id": "00-a", "player_display_name": "Josh Allen",
				 "recent_team": "BUF", "position": "QB",
				 "passing_yards": 263.0, "passing_tds": 2.0, "interceptions": 1.0}
			]`))
		case "/player_stats/player_stats_2025.json":
			_, _ = w.Write([]byte(`[
				{"week": 1, "player_id": "00-b", "player_display_name": "Bijan Robinson",
				 "recent_team": "ATL", "position": "RB",
				 "rushing_yards": 104.0, "rushing_tds": 1.0, "receptions": 4.0}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))

	games, err := client.FetchPlayerStats(context.Background(), []int{2025, 2024})
	if err != nil {
		t.Fatalf("FetchPlayerStats: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("games: got %d, want 2", len(games))
	}

	// Output is ordered by (season, week, player) regardless of fetch order.
	first := games[0]
	if first.Season != 2024 || first.PlayerName != "Josh Allen" {
		t.Fatalf("first game: %+v", first)
	}
	if first.PassingYards != 263 || first.PassingTDs != 2 || first.PassingInterceptions != 1 {
		t.Fatalf("passing line not mapped: %+v", first)
	}
	second := games[1]
	if second.Season != 2025 || second.RushingYards != 104 || second.Receptions != 4 {
		t.Fatalf("rushing line not mapped: %+v", second)
	}
}

func TestFetchPlayEvents_MapsNumericFlags(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pbp/play_by_play_2025.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[
			{"week": 8, "game_id": "2025_08_KC_BUF", "home_team": "BUF", "away_team": "KC",
			 "posteam": "KC", "defteam": "BUF", "play_type": "pass",
			 "pass": 1.0, "touchdown": 1.0, "pass_touchdown": 1.0,
			 "passer_player_id": "00-qb", "receiver_player_id": "00-wr",
			 "yards_gained": 54.0, "total_home_score": 7, "total_away_score": 14},
			{"week": 8, "game_id": "2025_08_KC_BUF", "home_team": "BUF", "away_team": "KC",
			 "posteam": "BUF", "defteam": "KC", "play_type": "run",
			 "rush": 1.0, "yards_gained": null}
		]`))
	}))

	events, err := client.FetchPlayEvents(context.Background(), []int{2025})
	if err != nil {
		t.Fatalf("FetchPlayEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	td := events[0]
	if !td.Pass || !td.Touchdown || !td.PassTouchdown || td.Rush {
		t.Fatalf("flags not mapped: %+v", td)
	}
	if td.YardsGained == nil || *td.YardsGained != 54 {
		t.Fatalf("yards not mapped: %+v", td)
	}
	if events[1].YardsGained != nil {
		t.Fatalf("null yardage must stay unknown: %+v", events[1])
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	if _, err := client.FetchKickingStats(context.Background(), []int{2025}); err != nil {
		t.Fatalf("FetchKickingStats: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls: got %d, want 2 (one retry)", got)
	}
}

func TestClient_DoesNotRetryHardFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	if _, err := client.FetchPlayerStats(context.Background(), []int{2025}); err == nil {
		t.Fatal("expected an error for status 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls: got %d, want 1 (no retries)", got)
	}
}

func TestClient_RequiresSeasons(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchPlayerStats(context.Background(), nil); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
