package stats

import (
	"sort"

	"github.com/porchcrew/gridiron/internal/platform/table"
)

// Column names shared across position tables. These are the external schema
// contract: names and kinds stay fixed across weeks, seasons, and filters.
const (
	ColSeason      = "season"
	ColWeek        = "week"
	ColPlayerID    = "player_id"
	ColPlayerName  = "player_name"
	ColTeam        = "team"
	ColPosition    = "position"
	ColLongTDBonus = "long_td_bonus"
	ColPoints      = "fantasy_points"
)

func OffenseSchema() table.Schema {
	return table.Schema{
		{Name: ColSeason, Kind: table.KindInt},
		{Name: ColWeek, Kind: table.KindInt},
		{Name: ColPlayerID, Kind: table.KindString},
		{Name: ColPlayerName, Kind: table.KindString},
		{Name: ColTeam, Kind: table.KindString},
		{Name: ColPosition, Kind: table.KindString},
		{Name: "passing_yards", Kind: table.KindFloat},
		{Name: "passing_tds", Kind: table.KindInt},
		{Name: "passing_interceptions", Kind: table.KindInt},
		{Name: "passing_2pt_conversions", Kind: table.KindInt},
		{Name: "rushing_yards", Kind: table.KindFloat},
		{Name: "rushing_tds", Kind: table.KindInt},
		{Name: "rushing_2pt_conversions", Kind: table.KindInt},
		{Name: "receiving_yards", Kind: table.KindFloat},
		{Name: "receptions", Kind: table.KindInt},
		{Name: "receiving_tds", Kind: table.KindInt},
		{Name: "receiving_2pt_conversions", Kind: table.KindInt},
		{Name: "special_teams_tds", Kind: table.KindInt},
		{Name: "def_tds", Kind: table.KindInt},
		{Name: "fumble_recovery_tds", Kind: table.KindInt},
		{Name: "def_safeties", Kind: table.KindInt},
		{Name: "fumbles_lost", Kind: table.KindInt},
	}
}

// OffenseTable lays player lines out on the offense schema. The table never
// carries untyped cells: a stat a player never recorded is a typed zero.
func OffenseTable(rows []OffenseGame) (*table.Table, error) {
	b := table.NewBuilder(OffenseSchema())
	for _, r := range rows {
		err := b.Append(
			r.Season, r.Week, r.PlayerID, r.PlayerName, r.Team, r.Position,
			r.PassingYards, r.PassingTDs, r.PassingInterceptions, r.Passing2PtConversions,
			r.RushingYards, r.RushingTDs, r.Rushing2PtConversions,
			r.ReceivingYards, r.Receptions, r.ReceivingTDs, r.Receiving2PtConversions,
			r.SpecialTeamsTDs, r.DefTDs, r.FumbleRecoveryTDs, r.DefSafeties,
			r.RushingFumblesLost+r.ReceivingFumblesLost+r.SackFumblesLost,
		)
		if err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}

func KickingSchema() table.Schema {
	return table.Schema{
		{Name: ColSeason, Kind: table.KindInt},
		{Name: ColWeek, Kind: table.KindInt},
		{Name: ColPlayerID, Kind: table.KindString},
		{Name: ColPlayerName, Kind: table.KindString},
		{Name: ColTeam, Kind: table.KindString},
		{Name: ColPosition, Kind: table.KindString},
		{Name: "pat_made", Kind: table.KindInt},
		{Name: "fg_made_0_19", Kind: table.KindInt},
		{Name: "fg_made_20_29", Kind: table.KindInt},
		{Name: "fg_made_30_39", Kind: table.KindInt},
		{Name: "fg_made_40_49", Kind: table.KindInt},
		{Name: "fg_made_50_59", Kind: table.KindInt},
		{Name: "fg_made_60_", Kind: table.KindInt},
		{Name: "fg_missed_0_19", Kind: table.KindInt},
		{Name: "fg_missed_20_29", Kind: table.KindInt},
		{Name: "fg_missed_30_39", Kind: table.KindInt},
		{Name: "fg_missed_40_49", Kind: table.KindInt},
		{Name: "fg_missed_50_59", Kind: table.KindInt},
		{Name: "fg_missed_60_", Kind: table.KindInt},
	}
}

func KickingTable(rows []KickingGame) (*table.Table, error) {
	b := table.NewBuilder(KickingSchema())
	for _, r := range rows {
		err := b.Append(
			r.Season, r.Week, r.PlayerID, r.PlayerName, r.Team, "K",
			r.PATMade,
			r.FGMade0_19, r.FGMade20_29, r.FGMade30_39, r.FGMade40_49, r.FGMade50_59, r.FGMade60Plus,
			r.FGMissed0_19, r.FGMissed20_29, r.FGMissed30_39, r.FGMissed40_49, r.FGMissed50_59, r.FGMissed60Plus,
		)
		if err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}

func DefenseSchema() table.Schema {
	return table.Schema{
		{Name: ColSeason, Kind: table.KindInt},
		{Name: ColWeek, Kind: table.KindInt},
		{Name: ColTeam, Kind: table.KindString},
		{Name: "sacks", Kind: table.KindFloat},
		{Name: "interceptions", Kind: table.KindInt},
		{Name: "fumbles_recovered", Kind: table.KindInt},
		{Name: "blocked_kicks", Kind: table.KindInt},
		{Name: "safeties", Kind: table.KindInt},
		{Name: "int_td", Kind: table.KindInt},
		{Name: "fum_ret_td", Kind: table.KindInt},
		{Name: "kr_td", Kind: table.KindInt},
		{Name: "pr_td", Kind: table.KindInt},
		{Name: "blk_kick_td", Kind: table.KindInt},
		{Name: "two_pt_returns", Kind: table.KindInt},
		{Name: "one_pt_safeties", Kind: table.KindInt},
		{Name: "points_allowed", Kind: table.KindInt},
		{Name: "yards_allowed", Kind: table.KindFloat},
	}
}

func DefenseTable(rows []DefenseGame) (*table.Table, error) {
	b := table.NewBuilder(DefenseSchema())
	for _, r := range rows {
		err := b.Append(
			r.Season, r.Week, r.Team,
			r.Sacks, r.Interceptions, r.FumblesRecovered, r.BlockedKicks, r.Safeties,
			r.IntTDs, r.FumbleReturnTDs, r.KickReturnTDs, r.PuntReturnTDs, r.BlockedKickTDs,
			r.TwoPointReturns, r.OnePointSafeties,
			r.PointsAllowed, r.YardsAllowed,
		)
		if err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}

func BonusSchema() table.Schema {
	return table.Schema{
		{Name: ColSeason, Kind: table.KindInt},
		{Name: ColWeek, Kind: table.KindInt},
		{Name: ColPlayerID, Kind: table.KindString},
		{Name: ColLongTDBonus, Kind: table.KindFloat},
	}
}

// BonusTable lays bonus rows out in deterministic (season, week, player)
// order so joins and reports stay reproducible run over run.
func BonusTable(rows []BonusRow) (*table.Table, error) {
	ordered := make([]BonusRow, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.PlayerID < b.PlayerID
	})

	b := table.NewBuilder(BonusSchema())
	for _, r := range ordered {
		if err := b.Append(r.Season, r.Week, r.PlayerID, r.Points); err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}
