package nflverse

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/porchcrew/gridiron/internal/domain/playbyplay"
	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/resilience"
	"github.com/porchcrew/gridiron/internal/usecase"
)

const (
	defaultBaseURL    = "https://github.com/nflverse/nflverse-data/releases/download"
	defaultMaxWorkers = 4
)

var errNFLVerseTransient = crerr.New("nflverse transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	MaxWorkers     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches nflverse release datasets. Endpoints are public and
// token-free; per-season downloads fan out on a bounded worker pool.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	maxWorkers     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		maxWorkers:     maxWorkers,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchPlayerStats returns weekly offensive player lines for the seasons.
func (c *Client) FetchPlayerStats(ctx context.Context, seasons []int) ([]stats.OffenseGame, error) {
	var (
		mu  sync.Mutex
		out []stats.OffenseGame
	)
	err := c.forEachSeason(ctx, seasons, func(season int) error {
		var rows []playerStatItem
		path := fmt.Sprintf("/player_stats/player_stats_%d.json", season)
		if err := c.doJSON(ctx, path, &rows); err != nil {
			return fmt.Errorf("fetch player stats season=%d: %w", season, err)
		}
		games := make([]stats.OffenseGame, 0, len(rows))
		for _, item := range rows {
			games = append(games, item.toOffenseGame(season))
		}
		mu.Lock()
		out = append(out, games...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessStatKey(out[i].Season, out[i].Week, out[i].PlayerID, out[j].Season, out[j].Week, out[j].PlayerID)
	})
	return out, nil
}

// FetchKickingStats returns weekly kicker lines for the seasons.
func (c *Client) FetchKickingStats(ctx context.Context, seasons []int) ([]stats.KickingGame, error) {
	var (
		mu  sync.Mutex
		out []stats.KickingGame
	)
	err := c.forEachSeason(ctx, seasons, func(season int) error {
		var rows []kickingStatItem
		path := fmt.Sprintf("/kicking_stats/kicking_stats_%d.json", season)
		if err := c.doJSON(ctx, path, &rows); err != nil {
			return fmt.Errorf("fetch kicking stats season=%d: %w", season, err)
		}
		games := make([]stats.KickingGame, 0, len(rows))
		for _, item := range rows {
			games = append(games, item.toKickingGame(season))
		}
		mu.Lock()
		out = append(out, games...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessStatKey(out[i].Season, out[i].Week, out[i].PlayerID, out[j].Season, out[j].Week, out[j].PlayerID)
	})
	return out, nil
}

// FetchPlayEvents returns the play-by-play feed for the seasons, reduced to
// the fields the derivation steps consume.
func (c *Client) FetchPlayEvents(ctx context.Context, seasons []int) ([]playbyplay.PlayEvent, error) {
	var (
		mu  sync.Mutex
		out []playbyplay.PlayEvent
	)
	err := c.forEachSeason(ctx, seasons, func(season int) error {
		var rows []playItem
		path := fmt.Sprintf("/pbp/play_by_play_%d.json", season)
		if err := c.doJSON(ctx, path, &rows); err != nil {
			return fmt.Errorf("fetch play by play season=%d: %w", season, err)
		}
		events := make([]playbyplay.PlayEvent, 0, len(rows))
		for _, item := range rows {
			events = append(events, item.toPlayEvent(season))
		}
		mu.Lock()
		out = append(out, events...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessStatKey(out[i].Season, out[i].Week, out[i].GameID, out[j].Season, out[j].Week, out[j].GameID)
	})
	return out, nil
}

// forEachSeason runs fetch once per season on a bounded ants pool and joins
// the per-season errors.
func (c *Client) forEachSeason(ctx context.Context, seasons []int, fetch func(season int) error) error {
	if len(seasons) == 0 {
		return fmt.Errorf("%w: at least one season is required", usecase.ErrInvalidInput)
	}

	workers := c.maxWorkers
	if workers > len(seasons) {
		workers = len(seasons)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create season worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	errs := make([]error, len(seasons))
	for i, season := range seasons {
		i, season := i, season
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			errs[i] = fetch(season)
		}); submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit season fetch: %w", submitErr)
		}
	}
	wg.Wait()
	return stderrors.Join(errs...)
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nflverse circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errNFLVerseTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNFLVerseTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 256<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errNFLVerseTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNFLVerseTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "nflverse request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func lessStatKey(aSeason, aWeek int, aID string, bSeason, bWeek int, bID string) bool {
	if aSeason != bSeason {
		return aSeason < bSeason
	}
	if aWeek != bWeek {
		return aWeek < bWeek
	}
	return aID < bID
}
