package usecase

import (
	"context"
	"fmt"

	"github.com/porchcrew/gridiron/internal/domain/identity"
	"github.com/porchcrew/gridiron/internal/domain/scoring"
	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/table"
)

// ReportInput is the raw provider data one report run consumes. Bonuses are
// derived from play-by-play before the assembler runs; the assembler itself
// never reaches back to the provider.
type ReportInput struct {
	Offense []stats.OffenseGame
	Kicking []stats.KickingGame
	Defense []stats.DefenseGame
	Bonuses []stats.BonusRow
}

// ReportRequest carries the caller's filters. Empty slices mean "no filter"
// for seasons and weeks. Player and team queries are free-text names that
// get resolved against the loaded rosters; setting either turns on identity
// filtering, and the side with no queries is dropped from the run.
type ReportRequest struct {
	Seasons []int
	Weeks   []int
	Players []string
	Teams   []string
}

// Report is the assembled output: one scored, sorted table per position
// class plus the combined players-then-defense table. Empty reports are a
// status, not an error.
type Report struct {
	Positions map[stats.PositionClass]*table.Table
	Combined  *table.Table
	Unmatched []string
	Empty     bool
}

type ReportService struct {
	logger *logging.Logger
}

func NewReportService(logger *logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{logger: logger}
}

var playerClasses = []stats.PositionClass{stats.ClassQB, stats.ClassRB, stats.ClassWRTE, stats.ClassK}

// Build runs the fixed stage order over the loaded data: season filter, week
// filter, identity filter, bonus join, scoring, sort, combine. Every stage
// returns a new table; a stage that eliminates all rows short-circuits to an
// empty report.
func (s *ReportService) Build(ctx context.Context, in ReportInput, req ReportRequest) (*Report, error) {
	ctx, span := startSpan(ctx, "usecase.ReportService.Build")
	defer span.End()

	offense, err := stats.OffenseTable(in.Offense)
	if err != nil {
		return nil, fmt.Errorf("build offense table: %w", err)
	}
	kicking, err := stats.KickingTable(in.Kicking)
	if err != nil {
		return nil, fmt.Errorf("build kicking table: %w", err)
	}
	defense, err := stats.DefenseTable(in.Defense)
	if err != nil {
		return nil, fmt.Errorf("build defense table: %w", err)
	}
	bonuses, err := stats.BonusTable(in.Bonuses)
	if err != nil {
		return nil, fmt.Errorf("build bonus table: %w", err)
	}

	identityFilter := len(req.Players) > 0 || len(req.Teams) > 0
	report := &Report{Positions: make(map[stats.PositionClass]*table.Table)}

	var matchedPlayers, matchedTeams map[string]struct{}
	if identityFilter {
		matchedPlayers = s.resolveQueries(ctx, report, req.Players, playerNames(in))
		matchedTeams = s.resolveQueries(ctx, report, req.Teams, teamCodes(in))
	}

	for _, class := range playerClasses {
		base := filterClass(offense, class)
		if class == stats.ClassK {
			base = kicking
		}
		base = filterSeasons(base, req.Seasons)
		base = filterWeeks(base, req.Weeks)
		if identityFilter {
			base = filterNames(base, stats.ColPlayerName, matchedPlayers)
		}
		if class != stats.ClassK {
			base, err = base.LeftJoin(bonuses, stats.ColSeason, stats.ColWeek, stats.ColPlayerID)
			if err != nil {
				return nil, fmt.Errorf("join bonuses onto %s table: %w", class, err)
			}
		}
		scored, err := scoreTable(class, base)
		if err != nil {
			return nil, fmt.Errorf("score %s table: %w", class, err)
		}
		sorted, err := scored.SortBy(stats.ColSeason, stats.ColWeek, stats.ColPlayerName, stats.ColPlayerID)
		if err != nil {
			return nil, fmt.Errorf("sort %s table: %w", class, err)
		}
		report.Positions[class] = sorted
	}

	dst := filterWeeks(filterSeasons(defense, req.Seasons), req.Weeks)
	if identityFilter {
		dst = filterNames(dst, stats.ColTeam, matchedTeams)
	}
	dstScored, err := scoreTable(stats.ClassDST, dst)
	if err != nil {
		return nil, fmt.Errorf("score dst table: %w", err)
	}
	dstSorted, err := dstScored.SortBy(stats.ColSeason, stats.ColWeek, stats.ColTeam)
	if err != nil {
		return nil, fmt.Errorf("sort dst table: %w", err)
	}
	report.Positions[stats.ClassDST] = dstSorted

	combined, err := s.combine(report.Positions, dstSorted)
	if err != nil {
		return nil, err
	}
	report.Combined = combined

	report.Empty = combined.Len() == 0
	if report.Empty {
		s.logger.InfoContext(ctx, "no rows matched report filters",
			"seasons", req.Seasons, "weeks", req.Weeks)
	}
	return report, nil
}

// combine concatenates the four player tables, sorts the result, then unions
// it with the already sorted defense table. The player and defense groups are
// ordered independently before the union so the combined report stays
// "players grouped first, chronological within each group" by construction.
func (s *ReportService) combine(positions map[stats.PositionClass]*table.Table, dst *table.Table) (*table.Table, error) {
	aligned := table.AlignSchemas(
		positions[stats.ClassQB],
		positions[stats.ClassRB],
		positions[stats.ClassWRTE],
		positions[stats.ClassK],
	)
	players, err := table.Concat(aligned...)
	if err != nil {
		return nil, fmt.Errorf("concat player tables: %w", err)
	}
	players, err = players.SortBy(stats.ColSeason, stats.ColWeek, stats.ColPlayerName, stats.ColPlayerID)
	if err != nil {
		return nil, fmt.Errorf("sort combined player table: %w", err)
	}

	pair := table.AlignSchemas(players, dst)
	combined, err := table.Concat(pair...)
	if err != nil {
		return nil, fmt.Errorf("concat players with dst: %w", err)
	}
	return combined, nil
}

// resolveQueries maps each free-text query to its best canonical match.
// Unmatched queries are a soft failure: warn, record, keep going.
func (s *ReportService) resolveQueries(ctx context.Context, report *Report, queries, candidates []string) map[string]struct{} {
	matched := make(map[string]struct{})
	for _, q := range queries {
		best, ok := identity.Best(q, candidates)
		if !ok {
			s.logger.WarnContext(ctx, "identity query did not resolve", "query", q)
			report.Unmatched = append(report.Unmatched, q)
			continue
		}
		s.logger.DebugContext(ctx, "resolved identity query",
			"query", q, "canonical", best.Name, "score", best.Score)
		matched[best.Name] = struct{}{}
	}
	return matched
}

func scoreTable(class stats.PositionClass, t *table.Table) (*table.Table, error) {
	points := make([]float64, t.Len())
	for i := range points {
		v, err := scoring.Points(class, t.Row(i))
		if err != nil {
			return nil, err
		}
		points[i] = v
	}
	return t.WithFloats(stats.ColPoints, points)
}

func filterClass(offense *table.Table, class stats.PositionClass) *table.Table {
	return offense.Filter(func(r table.Row) bool {
		c, ok := stats.ClassForPosition(r.Str(stats.ColPosition))
		return ok && c == class
	})
}

func filterSeasons(t *table.Table, seasons []int) *table.Table {
	if len(seasons) == 0 {
		return t
	}
	set := intSet(seasons)
	return t.Filter(func(r table.Row) bool {
		_, ok := set[int(r.Int(stats.ColSeason))]
		return ok
	})
}

func filterWeeks(t *table.Table, weeks []int) *table.Table {
	if len(weeks) == 0 {
		return t
	}
	set := intSet(weeks)
	return t.Filter(func(r table.Row) bool {
		_, ok := set[int(r.Int(stats.ColWeek))]
		return ok
	})
}

func filterNames(t *table.Table, column string, matched map[string]struct{}) *table.Table {
	return t.Filter(func(r table.Row) bool {
		_, ok := matched[r.Str(column)]
		return ok
	})
}

func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func playerNames(in ReportInput) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, r := range in.Offense {
		add(r.PlayerName)
	}
	for _, r := range in.Kicking {
		add(r.PlayerName)
	}
	return names
}

func teamCodes(in ReportInput) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, r := range in.Defense {
		if r.Team == "" {
			continue
		}
		if _, ok := seen[r.Team]; ok {
			continue
		}
		seen[r.Team] = struct{}{}
		codes = append(codes, r.Team)
	}
	return codes
}
