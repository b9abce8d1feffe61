package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/porchcrew/gridiron/internal/domain/stats"
)

type statLine map[string]float64

func (s statLine) Float(name string) float64 { return s[name] }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPoints_AllZeroLineScoresZeroForEveryClass(t *testing.T) {
	t.Parallel()

	for class := range stats.AllClasses {
		got, err := Points(class, statLine{})
		if err != nil {
			t.Fatalf("class %s: %v", class, err)
		}
		// A DST line with zero points and yards allowed is a shutout,
		// which the bucket tables award 8+8 for.
		if class == stats.ClassDST {
			if !almostEqual(got, 16) {
				t.Fatalf("class %s: got %v, want 16 (PA0 + YA<100 buckets)", class, got)
			}
			continue
		}
		if got != 0 {
			t.Fatalf("class %s: got %v, want 0", class, got)
		}
	}
}

func TestPoints_UnsupportedClass(t *testing.T) {
	t.Parallel()

	if _, err := Points(stats.PositionClass("P"), statLine{}); !errors.Is(err, ErrUnsupportedPosition) {
		t.Fatalf("expected ErrUnsupportedPosition, got %v", err)
	}
}

func TestOffensePoints_FullLine(t *testing.T) {
	t.Parallel()

	line := statLine{
		"passing_yards":         300, // 12
		"passing_tds":           2,   // 12
		"passing_interceptions": 1,   // -3
		"rushing_yards":         40,  // 4
		"rushing_tds":           1,   // 6
		"receiving_yards":       20,  // 2
		"receptions":            2,   // 2
		"receiving_tds":         1,   // 6
		"fumbles_lost":          1,   // -2
		stats.ColLongTDBonus:    3,   // joined bonus
	}
	if got := OffensePoints(line); !almostEqual(got, 42) {
		t.Fatalf("offense points: got %v, want 42", got)
	}
}

func TestKickerPoints_BucketValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line statLine
		want float64
	}{
		{"made 45yd", statLine{"fg_made_40_49": 1}, 4},
		{"made 52yd", statLine{"fg_made_50_59": 1}, 5},
		{"made 61yd", statLine{"fg_made_60_": 1}, 6},
		{"missed 35yd", statLine{"fg_missed_30_39": 1}, -4},
		{"missed 44yd", statLine{"fg_missed_40_49": 1}, -3},
		{"missed 55yd", statLine{"fg_missed_50_59": 1}, -1},
		{"three PATs and a short make", statLine{"pat_made": 3, "fg_made_20_29": 1}, 6},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KickerPoints(tc.line); !almostEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDSTPoints_EventAndBucketComposition(t *testing.T) {
	t.Parallel()

	line := statLine{
		"sacks":             3,   // 6
		"interceptions":     2,   // 4
		"fumbles_recovered": 1,   // 2
		"safeties":          1,   // 5
		"int_td":            1,   // 6
		"points_allowed":    10,  // +3 bucket
		"yards_allowed":     320, // +1 bucket
	}
	if got := DSTPoints(line); !almostEqual(got, 27) {
		t.Fatalf("dst points: got %v, want 27", got)
	}
}

func TestPointsAllowedComponent_Monotonic(t *testing.T) {
	t.Parallel()

	prev := PointsAllowedComponent(0)
	for pa := 1; pa <= 60; pa++ {
		cur := PointsAllowedComponent(pa)
		if cur > prev {
			t.Fatalf("bucket award increased at pa=%d: %d > %d", pa, cur, prev)
		}
		prev = cur
	}
}

func TestYardsAllowedComponent_Monotonic(t *testing.T) {
	t.Parallel()

	prev := YardsAllowedComponent(0)
	for ya := 1; ya <= 700; ya++ {
		cur := YardsAllowedComponent(ya)
		if cur > prev {
			t.Fatalf("bucket award increased at ya=%d: %d > %d", ya, cur, prev)
		}
		prev = cur
	}
}
