package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/table"
)

// Summary windows. Season covers every scored game, recent form the latest
// four, and the weeks window only the caller's week filter.
const (
	WindowSeason = "season"
	WindowRecent = "recent_4"
	WindowWeeks  = "selected_weeks"
)

const (
	ColIdentity    = "identity"
	ColWindow      = "window"
	ColGames       = "games"
	ColTotalPoints = "total_points"
)

// Performance tiers, in fantasy points per game.
const (
	nuclearPoints = 20.0
	boomPoints    = 15.0
	bustPoints    = 10.0
)

func SummarySchema() table.Schema {
	return table.Schema{
		{Name: ColIdentity, Kind: table.KindString},
		{Name: ColWindow, Kind: table.KindString},
		{Name: ColGames, Kind: table.KindInt},
		{Name: ColTotalPoints, Kind: table.KindFloat},
		{Name: "mean", Kind: table.KindFloat},
		{Name: "median", Kind: table.KindFloat},
		{Name: "max", Kind: table.KindFloat},
		{Name: "min", Kind: table.KindFloat},
		{Name: "stddev", Kind: table.KindFloat},
		{Name: "mad", Kind: table.KindFloat},
		{Name: "nuclear", Kind: table.KindInt},
		{Name: "boom", Kind: table.KindInt},
		{Name: "bust", Kind: table.KindInt},
	}
}

type SummaryService struct {
	logger *logging.Logger
}

func NewSummaryService(logger *logging.Logger) *SummaryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SummaryService{logger: logger}
}

type scoredGame struct {
	season int
	week   int
	points float64
}

// Aggregate rolls a scored report up to one row per identity per window.
// Identities are players where a player name is present and defense units
// otherwise. A window with no games for an identity is omitted rather than
// reported as zeros.
func (s *SummaryService) Aggregate(ctx context.Context, scored *table.Table, weeks []int) (*table.Table, error) {
	ctx, span := startSpan(ctx, "usecase.SummaryService.Aggregate")
	defer span.End()

	games := make(map[string][]scoredGame)
	var order []string
	for i := 0; i < scored.Len(); i++ {
		row := scored.Row(i)
		id := row.Str(stats.ColPlayerName)
		if id == "" {
			id = row.Str(stats.ColTeam)
		}
		if id == "" {
			continue
		}
		if _, ok := games[id]; !ok {
			order = append(order, id)
		}
		games[id] = append(games[id], scoredGame{
			season: int(row.Int(stats.ColSeason)),
			week:   int(row.Int(stats.ColWeek)),
			points: row.Float(stats.ColPoints),
		})
	}
	sort.Strings(order)

	weekSet := intSet(weeks)
	b := table.NewBuilder(SummarySchema())
	for _, id := range order {
		history := games[id]
		sort.SliceStable(history, func(i, j int) bool {
			if history[i].season != history[j].season {
				return history[i].season < history[j].season
			}
			return history[i].week < history[j].week
		})

		if err := appendWindow(b, id, WindowSeason, history); err != nil {
			return nil, err
		}
		if err := appendWindow(b, id, WindowRecent, recentGames(history, 4)); err != nil {
			return nil, err
		}
		if len(weeks) > 0 {
			var selected []scoredGame
			for _, g := range history {
				if _, ok := weekSet[g.week]; ok {
					selected = append(selected, g)
				}
			}
			if len(selected) == 0 {
				s.logger.DebugContext(ctx, "identity has no games in week window", "identity", id)
			}
			if err := appendWindow(b, id, WindowWeeks, selected); err != nil {
				return nil, err
			}
		}
	}
	return b.Table(), nil
}

func appendWindow(b *table.Builder, id, window string, games []scoredGame) error {
	if len(games) == 0 {
		return nil
	}
	points := make([]float64, len(games))
	for i, g := range games {
		points[i] = g.points
	}

	var nuclear, boom, bust int64
	for _, p := range points {
		if p >= nuclearPoints {
			nuclear++
		}
		if p >= boomPoints {
			boom++
		}
		if p < bustPoints {
			bust++
		}
	}

	med := median(points)
	if err := b.Append(
		id, window, len(games),
		sum(points), mean(points), med,
		maxOf(points), minOf(points),
		stddev(points), medianAbsDev(points, med),
		nuclear, boom, bust,
	); err != nil {
		return fmt.Errorf("append summary row for %s: %w", id, err)
	}
	return nil
}

func recentGames(history []scoredGame, n int) []scoredGame {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	ordered := make([]float64, len(values))
	copy(ordered, values)
	sort.Float64s(ordered)
	mid := len(ordered) / 2
	if len(ordered)%2 == 1 {
		return ordered[mid]
	}
	return (ordered[mid-1] + ordered[mid]) / 2
}

func maxOf(values []float64) float64 {
	top := values[0]
	for _, v := range values[1:] {
		if v > top {
			top = v
		}
	}
	return top
}

func minOf(values []float64) float64 {
	low := values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
	}
	return low
}

func stddev(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func medianAbsDev(values []float64, med float64) float64 {
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - med)
	}
	return median(devs)
}
