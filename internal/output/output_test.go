package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/table"
)

func TestWeekSuffix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		weeks []int
		want  string
	}{
		{"no filter", nil, ""},
		{"single week", []int{11}, "_week_11"},
		{"contiguous range", []int{8, 9, 10}, "_week_8-10"},
		{"gapped list", []int{8, 9, 11, 12}, "_week_8,9,11,12"},
		{"pair", []int{3, 4}, "_week_3-4"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := WeekSuffix(tc.weeks); got != tc.want {
				t.Fatalf("WeekSuffix(%v): got %q, want %q", tc.weeks, got, tc.want)
			}
		})
	}
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	if got := PositionFileName(stats.ClassWRTE, []int{8}); got != "wr_te_stats_week_8" {
		t.Fatalf("wr/te file name: %q", got)
	}
	if got := PositionFileName(stats.ClassDST, nil); got != "dst_stats" {
		t.Fatalf("dst file name: %q", got)
	}
	if got := CombinedFileName([]int{8, 9, 10}); got != "combined_stats_week_8-10" {
		t.Fatalf("combined file name: %q", got)
	}
	if got := SummaryFileName(nil); got != "summary" {
		t.Fatalf("summary file name: %q", got)
	}
}

func smallTable(t *testing.T) *table.Table {
	t.Helper()
	b := table.NewBuilder(table.Schema{
		{Name: "week", Kind: table.KindInt},
		{Name: "player_name", Kind: table.KindString},
		{Name: "fantasy_points", Kind: table.KindFloat},
	})
	if err := b.Append(8, "Josh Allen", 31.5); err != nil {
		t.Fatal(err)
	}
	if err := b.Append(9, "Jordan Love", 12.0); err != nil {
		t.Fatal(err)
	}
	return b.Table()
}

func TestWriter_SaveTable(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "reports")
	w := NewWriter(dir, logging.NewNop())

	path, err := w.SaveTable("qb_stats_week_8-9", smallTable(t))
	if err != nil {
		t.Fatalf("SaveTable: %v", err)
	}
	if filepath.Base(path) != "qb_stats_week_8-9.csv" {
		t.Fatalf("path: %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "week,player_name,fantasy_points\n8,Josh Allen,31.5\n9,Jordan Love,12\n"
	if string(raw) != want {
		t.Fatalf("csv content:\n%s\nwant:\n%s", raw, want)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := Display(&sb, "qb", smallTable(t)); err != nil {
		t.Fatalf("Display: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "qb (2 rows)") {
		t.Fatalf("missing title: %q", out)
	}
	if !strings.Contains(out, "Josh Allen") || !strings.Contains(out, "31.5") {
		t.Fatalf("missing row data: %q", out)
	}

	sb.Reset()
	empty := table.NewBuilder(table.Schema{{Name: "week", Kind: table.KindInt}}).Table()
	if err := Display(&sb, "dst", empty); err != nil {
		t.Fatalf("Display empty: %v", err)
	}
	if !strings.Contains(sb.String(), "no rows") {
		t.Fatalf("empty table output: %q", sb.String())
	}
}
