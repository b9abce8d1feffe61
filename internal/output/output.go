package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/porchcrew/gridiron/internal/domain/stats"
	"github.com/porchcrew/gridiron/internal/platform/logging"
	"github.com/porchcrew/gridiron/internal/platform/table"
)

// Writer persists report tables as CSV files under one output directory.
type Writer struct {
	dir    string
	logger *logging.Logger
}

func NewWriter(dir string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// SaveTable writes the table to <dir>/<name>.csv and returns the full path.
func (w *Writer) SaveTable(name string, t *table.Table) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := t.WriteCSV(buf); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name+".csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("wrote report file", "path", path, "rows", t.Len())
	return path, nil
}

var classSlugs = map[stats.PositionClass]string{
	stats.ClassQB:   "qb",
	stats.ClassRB:   "rb",
	stats.ClassWRTE: "wr_te",
	stats.ClassK:    "k",
	stats.ClassDST:  "dst",
}

// ClassSlug returns the file-name slug for a position class.
func ClassSlug(class stats.PositionClass) string {
	if slug, ok := classSlugs[class]; ok {
		return slug
	}
	return strings.ToLower(strings.ReplaceAll(string(class), "/", "_"))
}

func PositionFileName(class stats.PositionClass, weeks []int) string {
	return ClassSlug(class) + "_stats" + WeekSuffix(weeks)
}

func CombinedFileName(weeks []int) string {
	return "combined_stats" + WeekSuffix(weeks)
}

func SummaryFileName(weeks []int) string {
	return "summary" + WeekSuffix(weeks)
}

// WeekSuffix renders the active week filter into a file-name suffix: one
// week as "_week_8", a contiguous run as "_week_8-10", anything else as a
// comma list. No filter means no suffix.
func WeekSuffix(weeks []int) string {
	if len(weeks) == 0 {
		return ""
	}
	if len(weeks) == 1 {
		return "_week_" + strconv.Itoa(weeks[0])
	}

	contiguous := true
	for i := 1; i < len(weeks); i++ {
		if weeks[i] != weeks[i-1]+1 {
			contiguous = false
			break
		}
	}
	if contiguous {
		return fmt.Sprintf("_week_%d-%d", weeks[0], weeks[len(weeks)-1])
	}

	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = strconv.Itoa(w)
	}
	return "_week_" + strings.Join(parts, ",")
}
