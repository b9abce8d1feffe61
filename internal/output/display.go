package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/porchcrew/gridiron/internal/platform/table"
)

// Display pretty-prints a table to w with aligned columns, for --display runs.
func Display(w io.Writer, title string, t *table.Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintf(w, "%s: no rows\n", title)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (%d rows)\n", title, t.Len()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	schema := t.Schema()
	for i, col := range schema {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col.Name)
	}
	fmt.Fprintln(tw)

	for ri := 0; ri < t.Len(); ri++ {
		row := t.Row(ri)
		for ci, col := range schema {
			if ci > 0 {
				fmt.Fprint(tw, "\t")
			}
			switch col.Kind {
			case table.KindInt:
				fmt.Fprint(tw, strconv.FormatInt(row.Int(col.Name), 10))
			case table.KindFloat:
				fmt.Fprint(tw, strconv.FormatFloat(row.Float(col.Name), 'f', -1, 64))
			default:
				fmt.Fprint(tw, row.Str(col.Name))
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
