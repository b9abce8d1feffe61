package table

import (
	"fmt"
	"strconv"
)

// LeftJoin joins right onto t by the given key columns. Key columns must
// exist on both sides with matching kinds; right's remaining columns are
// appended to the result schema. Left rows without a match keep typed zero
// defaults for the joined columns. When right holds several rows for one
// key, the first wins.
func (t *Table) LeftJoin(right *Table, on ...string) (*Table, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("%w: join requires at least one key", ErrUnknownColumn)
	}

	leftKeys := make([]int, len(on))
	rightKeys := make([]int, len(on))
	for i, k := range on {
		li := t.schema.Index(k)
		ri := right.schema.Index(k)
		if li < 0 || ri < 0 {
			return nil, fmt.Errorf("%w: join key %q", ErrUnknownColumn, k)
		}
		if t.schema[li].Kind != right.schema[ri].Kind {
			return nil, fmt.Errorf("%w: join key %q is %s on the left and %s on the right",
				ErrSchemaMismatch, k, t.schema[li].Kind, right.schema[ri].Kind)
		}
		leftKeys[i] = li
		rightKeys[i] = ri
	}

	keySet := make(map[string]struct{}, len(on))
	for _, k := range on {
		keySet[k] = struct{}{}
	}

	// Columns carried over from the right side.
	carried := make([]int, 0, len(right.schema))
	for ci, c := range right.schema {
		if _, isKey := keySet[c.Name]; isKey {
			continue
		}
		if t.schema.Has(c.Name) {
			return nil, fmt.Errorf("%w: column %q present on both sides of join", ErrSchemaMismatch, c.Name)
		}
		carried = append(carried, ci)
	}

	lookup := make(map[string]int, right.rows)
	for ri := 0; ri < right.rows; ri++ {
		key := right.rowKey(ri, rightKeys)
		if _, ok := lookup[key]; !ok {
			lookup[key] = ri
		}
	}

	schema := t.schema.clone()
	for _, ci := range carried {
		schema = append(schema, right.schema[ci])
	}
	out := newEmpty(schema)
	out.rows = t.rows
	for ci := range t.schema {
		out.cols[ci] = t.copyColumn(ci)
	}

	for k, ci := range carried {
		oc := &out.cols[len(t.schema)+k]
		switch right.schema[ci].Kind {
		case KindInt:
			oc.ints = make([]int64, t.rows)
		case KindFloat:
			oc.floats = make([]float64, t.rows)
		case KindString:
			oc.strs = make([]string, t.rows)
		}
		for li := 0; li < t.rows; li++ {
			ri, ok := lookup[t.rowKey(li, leftKeys)]
			if !ok {
				continue // typed zero default
			}
			switch right.schema[ci].Kind {
			case KindInt:
				oc.ints[li] = right.cols[ci].ints[ri]
			case KindFloat:
				oc.floats[li] = right.cols[ci].floats[ri]
			case KindString:
				oc.strs[li] = right.cols[ci].strs[ri]
			}
		}
	}

	return out, nil
}

// AlignSchemas rewrites the given tables onto one unified schema so they can
// be concatenated. For every column that appears in at least one table, each
// table gains that column with the unified kind; missing cells are filled
// with typed defaults (0, 0.0, ""). Column order is normalized to first
// appearance across the inputs. AlignSchemas is total: it never fails, for
// any pair of well-formed tables.
func AlignSchemas(tables ...*Table) []*Table {
	var order []string
	kinds := make(map[string]Kind)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.schema {
			if existing, ok := kinds[c.Name]; ok {
				kinds[c.Name] = unifyKind(existing, c.Kind)
			} else {
				kinds[c.Name] = c.Kind
				order = append(order, c.Name)
			}
		}
	}

	unified := make(Schema, len(order))
	for i, name := range order {
		unified[i] = Column{Name: name, Kind: kinds[name]}
	}

	out := make([]*Table, len(tables))
	for i, t := range tables {
		out[i] = conform(t, unified)
	}
	return out
}

// unifyKind widens disagreeing kinds: int and float widen to float, anything
// against string widens to string.
func unifyKind(a, b Kind) Kind {
	if a == b {
		return a
	}
	if a == KindString || b == KindString {
		return KindString
	}
	return KindFloat
}

func conform(t *Table, unified Schema) *Table {
	out := newEmpty(unified)
	if t == nil {
		return out
	}
	out.rows = t.rows
	for ui, spec := range unified {
		si := t.schema.Index(spec.Name)
		if si < 0 {
			out.cols[ui] = defaultColumn(spec.Kind, t.rows)
			continue
		}
		out.cols[ui] = convertColumn(t, si, spec.Kind)
	}
	return out
}

func defaultColumn(kind Kind, rows int) column {
	switch kind {
	case KindInt:
		return column{ints: make([]int64, rows)}
	case KindFloat:
		return column{floats: make([]float64, rows)}
	default:
		return column{strs: make([]string, rows)}
	}
}

func convertColumn(t *Table, ci int, target Kind) column {
	src := t.cols[ci]
	from := t.schema[ci].Kind
	if from == target {
		return t.copyColumn(ci)
	}
	out := defaultColumn(target, t.rows)
	for i := 0; i < t.rows; i++ {
		switch {
		case from == KindInt && target == KindFloat:
			out.floats[i] = float64(src.ints[i])
		case from == KindInt && target == KindString:
			out.strs[i] = strconv.FormatInt(src.ints[i], 10)
		case from == KindFloat && target == KindString:
			out.strs[i] = strconv.FormatFloat(src.floats[i], 'f', -1, 64)
		}
	}
	return out
}

// Concat appends the given tables in order. Schemas must already be
// identical in names, kinds, and order; run AlignSchemas first. A mismatch
// here means the reconciliation step was skipped and is reported as
// ErrSchemaMismatch.
func Concat(tables ...*Table) (*Table, error) {
	first := -1
	for i, t := range tables {
		if t != nil {
			first = i
			break
		}
	}
	if first < 0 {
		return newEmpty(nil), nil
	}

	base := tables[first]
	out := newEmpty(base.schema)
	for _, t := range tables[first:] {
		if t == nil {
			continue
		}
		if !base.schema.Equal(t.schema) {
			return nil, fmt.Errorf("%w: cannot concat %v with %v", ErrSchemaMismatch, base.schema, t.schema)
		}
		for ci := range out.schema {
			switch out.schema[ci].Kind {
			case KindInt:
				out.cols[ci].ints = append(out.cols[ci].ints, t.cols[ci].ints...)
			case KindFloat:
				out.cols[ci].floats = append(out.cols[ci].floats, t.cols[ci].floats...)
			case KindString:
				out.cols[ci].strs = append(out.cols[ci].strs, t.cols[ci].strs...)
			}
		}
		out.rows += t.rows
	}
	return out, nil
}
