package playbyplay

import (
	"sort"

	"github.com/porchcrew/gridiron/internal/domain/stats"
)

type unitKey struct {
	season int
	week   int
	team   string
}

type gameKey struct {
	season int
	week   int
	gameID string
}

type gameScore struct {
	homeTeam  string
	awayTeam  string
	homeScore int
	awayScore int
}

// DeriveDefense aggregates team defense/special-teams stat lines from play
// events: defensive events, return touchdowns, points allowed (from final
// scores), and yards allowed (offensive plays only). One line per
// (season, week, team) that defended at least one play.
func DeriveDefense(events []PlayEvent) []stats.DefenseGame {
	units := make(map[unitKey]*stats.DefenseGame)
	games := make(map[gameKey]*gameScore)

	unit := func(season, week int, team string) *stats.DefenseGame {
		if team == "" {
			return nil
		}
		key := unitKey{season: season, week: week, team: team}
		u, ok := units[key]
		if !ok {
			u = &stats.DefenseGame{Season: season, Week: week, Team: team}
			units[key] = u
		}
		return u
	}

	for _, e := range events {
		def := unit(e.Season, e.Week, e.DefTeam)

		if def != nil {
			if e.Sack {
				def.Sacks++
			}
			// The defending team owns the pick only when it is not an
			// offensive giveaway recorded against itself.
			if e.Interception && e.DefTeam != e.PosTeam {
				def.Interceptions++
			}
			if e.Safety {
				def.Safeties++
			}
			if e.Fumble && (e.FumbleRecoveryTeam1 == e.DefTeam || e.FumbleRecoveryTeam2 == e.DefTeam) {
				def.FumblesRecovered++
			}
			if e.blockedKick() {
				def.BlockedKicks++
			}

			if e.ReturnTouchdown && e.TDTeam == e.DefTeam {
				if e.Interception {
					def.IntTDs++
				}
				if e.Fumble && e.FumbleLost {
					def.FumbleReturnTDs++
				}
				if e.blockedKick() {
					def.BlockedKickTDs++
				}
			}
			if e.DefensiveTwoPointConv {
				def.TwoPointReturns++
			}
			if e.DefensiveExtraPointConv || e.ExtraPointResult == "safety" {
				def.OnePointSafeties++
			}

			if yards, ok := e.yards(); ok && isOffensivePlay(e) {
				def.YardsAllowed += yards
			}
		}

		// Kick and punt return touchdowns belong to the returning unit,
		// which is not always the listed defense.
		if e.ReturnTouchdown && e.ReturnTeam != "" {
			if ret := unit(e.Season, e.Week, e.ReturnTeam); ret != nil {
				if e.KickoffAttempt {
					ret.KickReturnTDs++
				}
				if e.PuntAttempt {
					ret.PuntReturnTDs++
				}
			}
		}

		// Track running final scores per game for points allowed.
		if e.GameID != "" && e.HomeTeam != "" && e.AwayTeam != "" {
			key := gameKey{season: e.Season, week: e.Week, gameID: e.GameID}
			g, ok := games[key]
			if !ok {
				g = &gameScore{homeTeam: e.HomeTeam, awayTeam: e.AwayTeam}
				games[key] = g
			}
			if e.TotalHomeScore > g.homeScore {
				g.homeScore = e.TotalHomeScore
			}
			if e.TotalAwayScore > g.awayScore {
				g.awayScore = e.TotalAwayScore
			}
		}
	}

	// Points allowed: each side concedes the opponent's final score. Teams
	// that somehow never defended a play still get a line here.
	for key, g := range games {
		if home := unit(key.season, key.week, g.homeTeam); home != nil {
			home.PointsAllowed = g.awayScore
		}
		if away := unit(key.season, key.week, g.awayTeam); away != nil {
			away.PointsAllowed = g.homeScore
		}
	}

	rows := make([]stats.DefenseGame, 0, len(units))
	for _, u := range units {
		rows = append(rows, *u)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Team < b.Team
	})
	return rows
}

func isOffensivePlay(e PlayEvent) bool {
	switch e.PlayType {
	case "run", "pass", "qb_kneel", "scramble":
		return true
	}
	return e.Rush || e.Pass
}
