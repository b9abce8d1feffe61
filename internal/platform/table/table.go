package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrSchemaMismatch = errors.New("table: schema mismatch")
	ErrUnknownColumn  = errors.New("table: unknown column")
	ErrValueKind      = errors.New("table: value does not match column kind")
)

// Kind is the declared type of a column. Every column always carries a kind,
// even when all of its cells hold the zero sentinel.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

type Column struct {
	Name string
	Kind Kind
}

// Schema is an ordered list of typed columns.
type Schema []Column

func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) Has(name string) bool { return s.Index(name) >= 0 }

// Equal reports whether both schemas carry the same columns with the same
// kinds in the same order. This is the contract Concat enforces.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Schema) clone() Schema {
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

type column struct {
	ints   []int64
	floats []float64
	strs   []string
}

// Table is a columnar table with a strict, fully typed schema. Every
// operation returns a new table; an existing table is never mutated.
type Table struct {
	schema Schema
	cols   []column
	rows   int
}

func newEmpty(schema Schema) *Table {
	return &Table{schema: schema.clone(), cols: make([]column, len(schema))}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

func (t *Table) Schema() Schema {
	if t == nil {
		return nil
	}
	return t.schema.clone()
}

func (t *Table) Has(name string) bool { return t != nil && t.schema.Has(name) }

// Ints returns a copy of an int column's cells, or nil when the column is
// missing or not an int column.
func (t *Table) Ints(name string) []int64 {
	i := t.colIndex(name, KindInt)
	if i < 0 {
		return nil
	}
	out := make([]int64, t.rows)
	copy(out, t.cols[i].ints)
	return out
}

func (t *Table) Floats(name string) []float64 {
	i := t.colIndex(name, KindFloat)
	if i < 0 {
		return nil
	}
	out := make([]float64, t.rows)
	copy(out, t.cols[i].floats)
	return out
}

func (t *Table) Strings(name string) []string {
	i := t.colIndex(name, KindString)
	if i < 0 {
		return nil
	}
	out := make([]string, t.rows)
	copy(out, t.cols[i].strs)
	return out
}

func (t *Table) colIndex(name string, kind Kind) int {
	if t == nil {
		return -1
	}
	i := t.schema.Index(name)
	if i < 0 || t.schema[i].Kind != kind {
		return -1
	}
	return i
}

// Row is a read-only view over one table row. Absent columns read as typed
// zeros, matching the reconciliation policy for missing data.
type Row struct {
	t   *Table
	idx int
}

func (t *Table) Row(i int) Row { return Row{t: t, idx: i} }

// Float reads a numeric cell, widening ints. Missing or non-numeric columns
// read as 0.
func (r Row) Float(name string) float64 {
	i := r.t.schema.Index(name)
	if i < 0 {
		return 0
	}
	switch r.t.schema[i].Kind {
	case KindInt:
		return float64(r.t.cols[i].ints[r.idx])
	case KindFloat:
		return r.t.cols[i].floats[r.idx]
	default:
		return 0
	}
}

func (r Row) Int(name string) int64 {
	i := r.t.schema.Index(name)
	if i < 0 {
		return 0
	}
	switch r.t.schema[i].Kind {
	case KindInt:
		return r.t.cols[i].ints[r.idx]
	case KindFloat:
		return int64(r.t.cols[i].floats[r.idx])
	default:
		return 0
	}
}

func (r Row) Str(name string) string {
	i := r.t.schema.Index(name)
	if i < 0 || r.t.schema[i].Kind != KindString {
		return ""
	}
	return r.t.cols[i].strs[r.idx]
}

// Builder accumulates rows for a fixed schema.
type Builder struct {
	t *Table
}

func NewBuilder(schema Schema) *Builder {
	return &Builder{t: newEmpty(schema)}
}

// Append adds one row. Values are positional and must match the schema's
// column kinds; ints widen into float columns.
func (b *Builder) Append(values ...any) error {
	if len(values) != len(b.t.schema) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrValueKind, len(values), len(b.t.schema))
	}
	for i, v := range values {
		col := &b.t.cols[i]
		spec := b.t.schema[i]
		switch spec.Kind {
		case KindInt:
			switch x := v.(type) {
			case int:
				col.ints = append(col.ints, int64(x))
			case int64:
				col.ints = append(col.ints, x)
			default:
				return fmt.Errorf("%w: column %q expects int, got %T", ErrValueKind, spec.Name, v)
			}
		case KindFloat:
			switch x := v.(type) {
			case float64:
				col.floats = append(col.floats, x)
			case int:
				col.floats = append(col.floats, float64(x))
			case int64:
				col.floats = append(col.floats, float64(x))
			default:
				return fmt.Errorf("%w: column %q expects float, got %T", ErrValueKind, spec.Name, v)
			}
		case KindString:
			x, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: column %q expects string, got %T", ErrValueKind, spec.Name, v)
			}
			col.strs = append(col.strs, x)
		default:
			return fmt.Errorf("%w: column %q has no declared kind", ErrValueKind, spec.Name)
		}
	}
	b.t.rows++
	return nil
}

func (b *Builder) Table() *Table { return b.t }

// take gathers the given row indexes into a new table.
func (t *Table) take(idxs []int) *Table {
	out := newEmpty(t.schema)
	out.rows = len(idxs)
	for ci := range t.schema {
		src := t.cols[ci]
		dst := &out.cols[ci]
		switch t.schema[ci].Kind {
		case KindInt:
			dst.ints = make([]int64, len(idxs))
			for i, ri := range idxs {
				dst.ints[i] = src.ints[ri]
			}
		case KindFloat:
			dst.floats = make([]float64, len(idxs))
			for i, ri := range idxs {
				dst.floats[i] = src.floats[ri]
			}
		case KindString:
			dst.strs = make([]string, len(idxs))
			for i, ri := range idxs {
				dst.strs[i] = src.strs[ri]
			}
		}
	}
	return out
}

// Filter returns the rows for which keep reports true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	if t == nil {
		return nil
	}
	idxs := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(t.Row(i)) {
			idxs = append(idxs, i)
		}
	}
	return t.take(idxs)
}

// SortBy stable-sorts rows ascending by the given key columns.
func (t *Table) SortBy(keys ...string) (*Table, error) {
	for _, k := range keys {
		if !t.schema.Has(k) {
			return nil, fmt.Errorf("%w: sort key %q", ErrUnknownColumn, k)
		}
	}
	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		for _, k := range keys {
			ci := t.schema.Index(k)
			switch t.schema[ci].Kind {
			case KindInt:
				va, vb := t.cols[ci].ints[order[a]], t.cols[ci].ints[order[b]]
				if va != vb {
					return va < vb
				}
			case KindFloat:
				va, vb := t.cols[ci].floats[order[a]], t.cols[ci].floats[order[b]]
				if va != vb {
					return va < vb
				}
			case KindString:
				va, vb := t.cols[ci].strs[order[a]], t.cols[ci].strs[order[b]]
				if va != vb {
					return va < vb
				}
			}
		}
		return false
	})
	return t.take(order), nil
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	schema := make(Schema, 0, len(names))
	srcIdx := make([]int, 0, len(names))
	for _, name := range names {
		i := t.schema.Index(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: select %q", ErrUnknownColumn, name)
		}
		schema = append(schema, t.schema[i])
		srcIdx = append(srcIdx, i)
	}
	out := newEmpty(schema)
	out.rows = t.rows
	for oi, si := range srcIdx {
		out.cols[oi] = t.copyColumn(si)
	}
	return out, nil
}

// WithFloats appends a new float column. The column must not already exist
// and the values must cover every row.
func (t *Table) WithFloats(name string, values []float64) (*Table, error) {
	if t.schema.Has(name) {
		return nil, fmt.Errorf("%w: column %q already present", ErrSchemaMismatch, name)
	}
	if len(values) != t.rows {
		return nil, fmt.Errorf("%w: column %q has %d values for %d rows", ErrValueKind, name, len(values), t.rows)
	}
	out := newEmpty(append(t.schema.clone(), Column{Name: name, Kind: KindFloat}))
	out.rows = t.rows
	for i := range t.schema {
		out.cols[i] = t.copyColumn(i)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	out.cols[len(t.schema)] = column{floats: vals}
	return out, nil
}

// Rename renames one column, keeping its kind and position.
func (t *Table) Rename(from, to string) (*Table, error) {
	i := t.schema.Index(from)
	if i < 0 {
		return nil, fmt.Errorf("%w: rename %q", ErrUnknownColumn, from)
	}
	if t.schema.Has(to) {
		return nil, fmt.Errorf("%w: rename target %q already present", ErrSchemaMismatch, to)
	}
	out := newEmpty(t.schema)
	out.rows = t.rows
	for ci := range t.schema {
		out.cols[ci] = t.copyColumn(ci)
	}
	out.schema[i].Name = to
	return out, nil
}

func (t *Table) copyColumn(i int) column {
	src := t.cols[i]
	var dst column
	switch t.schema[i].Kind {
	case KindInt:
		dst.ints = make([]int64, len(src.ints))
		copy(dst.ints, src.ints)
	case KindFloat:
		dst.floats = make([]float64, len(src.floats))
		copy(dst.floats, src.floats)
	case KindString:
		dst.strs = make([]string, len(src.strs))
		copy(dst.strs, src.strs)
	}
	return dst
}

func (t *Table) cellKey(ci, ri int) string {
	switch t.schema[ci].Kind {
	case KindInt:
		return strconv.FormatInt(t.cols[ci].ints[ri], 10)
	case KindFloat:
		return strconv.FormatFloat(t.cols[ci].floats[ri], 'f', -1, 64)
	default:
		return t.cols[ci].strs[ri]
	}
}

func (t *Table) rowKey(ri int, colIdx []int) string {
	parts := make([]string, len(colIdx))
	for i, ci := range colIdx {
		parts[i] = t.cellKey(ci, ri)
	}
	return strings.Join(parts, "\x1f")
}
