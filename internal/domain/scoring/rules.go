package scoring

import (
	"errors"
	"fmt"

	"github.com/porchcrew/gridiron/internal/domain/stats"
)

var ErrUnsupportedPosition = errors.New("no scoring formula for position class")

// StatReader reads one stat line by column name. Absent stats read as zero,
// so every formula below is total over well-formed lines.
type StatReader interface {
	Float(name string) float64
}

// Points applies the Porch Crew rubric for the given position class.
// It is pure: the same line always scores the same value.
func Points(class stats.PositionClass, row StatReader) (float64, error) {
	switch class {
	case stats.ClassQB, stats.ClassRB, stats.ClassWRTE:
		return OffensePoints(row), nil
	case stats.ClassK:
		return KickerPoints(row), nil
	case stats.ClassDST:
		return DSTPoints(row), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPosition, class)
	}
}

// OffensePoints scores QB, RB, WR, and TE lines. The long-TD bonus column is
// populated by the play-by-play join and reads as zero when the line never
// had a qualifying play.
func OffensePoints(row StatReader) float64 {
	pts := 0.0

	// Passing.
	pts += 0.04 * row.Float("passing_yards")
	pts += 6.0 * row.Float("passing_tds")
	pts += -3.0 * row.Float("passing_interceptions")
	pts += 2.0 * row.Float("passing_2pt_conversions")

	// Rushing.
	pts += 0.10 * row.Float("rushing_yards")
	pts += 6.0 * row.Float("rushing_tds")
	pts += 2.0 * row.Float("rushing_2pt_conversions")

	// Receiving.
	pts += 0.10 * row.Float("receiving_yards")
	pts += 1.0 * row.Float("receptions")
	pts += 6.0 * row.Float("receiving_tds")
	pts += 2.0 * row.Float("receiving_2pt_conversions")

	// Returns and defensive scores credited to the player.
	pts += 6.0 * row.Float("special_teams_tds")
	pts += 6.0 * row.Float("def_tds")
	pts += 6.0 * row.Float("fumble_recovery_tds")
	pts += 1.0 * row.Float("def_safeties")

	pts += -2.0 * row.Float("fumbles_lost")
	pts += row.Float(stats.ColLongTDBonus)

	return pts
}

// KickerPoints scores kicker lines: distance-bucketed make values and
// distance-bucketed miss penalties.
func KickerPoints(row StatReader) float64 {
	pts := 0.0

	pts += 1.0 * row.Float("pat_made")

	made0_39 := row.Float("fg_made_0_19") + row.Float("fg_made_20_29") + row.Float("fg_made_30_39")
	pts += 3.0 * made0_39
	pts += 4.0 * row.Float("fg_made_40_49")
	pts += 5.0 * row.Float("fg_made_50_59")
	pts += 6.0 * row.Float("fg_made_60_")

	miss0_39 := row.Float("fg_missed_0_19") + row.Float("fg_missed_20_29") + row.Float("fg_missed_30_39")
	miss40_49 := row.Float("fg_missed_40_49")
	miss50Plus := row.Float("fg_missed_50_59") + row.Float("fg_missed_60_")

	// Every miss costs 1; short misses cost 3 more (net -4) and 40-49 yard
	// misses cost 2 more (net -3). 50+ misses take only the flat penalty.
	pts += -1.0 * (miss0_39 + miss40_49 + miss50Plus)
	pts += -3.0 * miss0_39
	pts += -2.0 * miss40_49

	return pts
}

// DSTPoints scores team defense/special-teams lines.
func DSTPoints(row StatReader) float64 {
	pts := 0.0

	pts += 2.0 * row.Float("sacks")
	pts += 2.0 * row.Float("blocked_kicks")
	pts += 2.0 * row.Float("interceptions")
	pts += 2.0 * row.Float("fumbles_recovered")
	pts += 5.0 * row.Float("safeties")

	pts += 6.0 * row.Float("int_td")
	pts += 6.0 * row.Float("fum_ret_td")
	pts += 6.0 * row.Float("kr_td")
	pts += 6.0 * row.Float("pr_td")
	pts += 6.0 * row.Float("blk_kick_td")
	pts += 2.0 * row.Float("two_pt_returns")
	pts += 1.0 * row.Float("one_pt_safeties")

	pts += float64(PointsAllowedComponent(int(row.Float("points_allowed"))))
	pts += float64(YardsAllowedComponent(int(row.Float("yards_allowed"))))

	return pts
}

// PointsAllowedComponent awards the points-allowed bucket. Buckets are
// monotonically non-increasing as points allowed grow.
func PointsAllowedComponent(pointsAllowed int) int {
	pa := pointsAllowed
	switch {
	case pa <= 0:
		return 8
	case pa <= 6:
		return 4
	case pa <= 13:
		return 3
	case pa <= 17:
		return 1
	case pa <= 27:
		return 0
	case pa <= 34:
		return -1
	case pa <= 45:
		return -3
	default:
		return -5
	}
}

// YardsAllowedComponent awards the yards-allowed bucket, monotonically
// non-increasing as yards allowed grow.
func YardsAllowedComponent(yardsAllowed int) int {
	ya := yardsAllowed
	switch {
	case ya < 100:
		return 8
	case ya < 200:
		return 5
	case ya < 300:
		return 3
	case ya < 350:
		return 1
	case ya < 450:
		return 0
	case ya < 500:
		return -1
	case ya < 550:
		return -2
	default:
		return -3
	}
}
