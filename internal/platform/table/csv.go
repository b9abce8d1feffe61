package table

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV renders the table with a header row. Floats use the shortest
// round-trip representation so outputs stay byte-stable across runs.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(t.schema))
	for i, c := range t.schema {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(t.schema))
	for ri := 0; ri < t.rows; ri++ {
		for ci := range t.schema {
			switch t.schema[ci].Kind {
			case KindInt:
				record[ci] = strconv.FormatInt(t.cols[ci].ints[ri], 10)
			case KindFloat:
				record[ci] = strconv.FormatFloat(t.cols[ci].floats[ri], 'f', -1, 64)
			case KindString:
				record[ci] = t.cols[ci].strs[ri]
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
