package playbyplay

import (
	"sort"

	"github.com/porchcrew/gridiron/internal/domain/stats"
)

// Long-touchdown bonus thresholds. The two tiers are mutually exclusive:
// a 55-yard score earns only the 50+ bonus, never both.
const (
	longTDYards   = 40
	longerTDYards = 50
	longTDBonus   = 2.0
	longerTDBonus = 3.0
)

type bonusKey struct {
	season   int
	week     int
	playerID string
}

// DeriveBonuses scans play events for 40+ and 50+ yard touchdowns and sums
// bonus points per (season, week, player). A passing touchdown credits both
// the passer and the receiver. Plays without yardage or without any player
// identity are skipped.
func DeriveBonuses(events []PlayEvent) []stats.BonusRow {
	totals := make(map[bonusKey]float64)

	for _, e := range events {
		if !e.Touchdown && !e.PassTouchdown {
			continue
		}
		yards, ok := e.yards()
		if !ok {
			continue
		}

		var bonus float64
		switch {
		case yards >= longerTDYards:
			bonus = longerTDBonus
		case yards >= longTDYards:
			bonus = longTDBonus
		default:
			continue
		}

		// Plays crediting nobody (no player identity) are skipped.
		credit := func(playerID string) {
			if playerID == "" {
				return
			}
			totals[bonusKey{season: e.Season, week: e.Week, playerID: playerID}] += bonus
		}

		if e.Pass && e.Touchdown {
			credit(e.PasserID)
		}
		if e.Pass && e.PassTouchdown {
			credit(e.ReceiverID)
		}
		if e.Rush && e.Touchdown {
			credit(e.RusherID)
		}
	}

	rows := make([]stats.BonusRow, 0, len(totals))
	for key, points := range totals {
		rows = append(rows, stats.BonusRow{
			Season:   key.season,
			Week:     key.week,
			PlayerID: key.playerID,
			Points:   points,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.PlayerID < b.PlayerID
	})
	return rows
}
