// Package frame is the in-memory table used to profile data files and to
// preview dataset requests locally.
package frame

import (
	"fmt"
	"sort"
)

// Field describes one column of a Schema.
type Field struct {
	Name string
	Type Type
}

// Schema is the ordered list of columns of a Frame.
type Schema struct {
	Fields []Field
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Frame is a columnar table. Column order is significant: the label column
// of a data file is its last one.
type Frame struct {
	cols  []Column
	index map[string]int
	nrows int
}

// New returns an empty frame with the given schema.
func New(s Schema) (*Frame, error) {
	cols := make([]Column, len(s.Fields))
	for i, fd := range s.Fields {
		c, err := NewColumn(fd.Name, fd.Type)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return FromColumns(cols...)
}

// FromColumns builds a frame over cols, which must share one length and have
// distinct names.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{cols: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name())
		}
		f.index[c.Name()] = i
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), f.nrows)
		}
	}
	return f, nil
}

func (f *Frame) Rows() int           { return f.nrows }
func (f *Frame) Cols() int           { return len(f.cols) }
func (f *Frame) Column(i int) Column { return f.cols[i] }

func (f *Frame) Schema() Schema {
	s := Schema{Fields: make([]Field, len(f.cols))}
	for i, c := range f.cols {
		s.Fields[i] = Field{Name: c.Name(), Type: c.Type()}
	}
	return s
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AppendRow appends one row; values are converted to the column types and a
// nil value is a null. Missing trailing values are null.
func (f *Frame) AppendRow(values ...any) error {
	if len(values) > len(f.cols) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(values), len(f.cols))
	}
	for i, c := range f.cols {
		var v any
		if i < len(values) {
			v = values[i]
		}
		if err := c.AppendValue(v); err != nil {
			// keep every column at the same length
			for _, done := range f.cols[:i] {
				truncate(done, f.nrows)
			}
			return fmt.Errorf("row %d: %w", f.nrows, err)
		}
	}
	f.nrows++
	return nil
}

func truncate(c Column, n int) {
	switch v := c.(type) {
	case *BoolColumn:
		v.data, v.nulls = v.data[:n], v.nulls[:n]
	case *IntColumn:
		v.data, v.nulls = v.data[:n], v.nulls[:n]
	case *FloatColumn:
		v.data, v.nulls = v.data[:n], v.nulls[:n]
	case *StringColumn:
		v.data, v.nulls = v.data[:n], v.nulls[:n]
	}
}

// Row returns the values of row i.
func (f *Frame) Row(i int) []any {
	out := make([]any, len(f.cols))
	for c, col := range f.cols {
		out[c] = col.Value(i)
	}
	return out
}

// Select returns a frame made of the columns at idx, in that order.
func (f *Frame) Select(idx []int) (*Frame, error) {
	cols := make([]Column, len(idx))
	for i, c := range idx {
		if c < 0 || c >= len(f.cols) {
			return nil, fmt.Errorf("column index %d out of range (have %d)", c, len(f.cols))
		}
		cols[i] = f.cols[c]
	}
	return FromColumns(cols...)
}

// Drop returns a frame without the columns at idx.
func (f *Frame) Drop(idx []int) (*Frame, error) {
	drop := make(map[int]bool, len(idx))
	for _, c := range idx {
		if c < 0 || c >= len(f.cols) {
			return nil, fmt.Errorf("column index %d out of range (have %d)", c, len(f.cols))
		}
		drop[c] = true
	}
	keep := make([]int, 0, len(f.cols))
	for c := range f.cols {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return f.Select(keep)
}

// MoveToEnd returns a frame where the columns at idx follow all the others,
// in the order given.
func (f *Frame) MoveToEnd(idx []int) (*Frame, error) {
	moved := make(map[int]bool, len(idx))
	for _, c := range idx {
		moved[c] = true
	}
	order := make([]int, 0, len(f.cols))
	for c := range f.cols {
		if !moved[c] {
			order = append(order, c)
		}
	}
	return f.Select(append(order, idx...))
}

// Take returns a frame holding the given rows in order. Rows may repeat.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Take(rows)
	}
	out, _ := FromColumns(cols...)
	if len(cols) == 0 {
		out.nrows = len(rows)
	}
	return out
}

// Replace returns a frame where column i is c. c must have as many rows as f.
func (f *Frame) Replace(i int, c Column) (*Frame, error) {
	if i < 0 || i >= len(f.cols) {
		return nil, fmt.Errorf("column index %d out of range (have %d)", i, len(f.cols))
	}
	cols := append([]Column(nil), f.cols...)
	cols[i] = c
	return FromColumns(cols...)
}

// Concat appends the rows of other, matching columns by position. Values are
// converted to f's column types.
func (f *Frame) Concat(other *Frame) (*Frame, error) {
	if other.Cols() != f.Cols() {
		return nil, fmt.Errorf("cannot concat %d columns onto %d", other.Cols(), f.Cols())
	}
	out, err := New(f.Schema())
	if err != nil {
		return nil, err
	}
	for _, src := range []*Frame{f, other} {
		for r := 0; r < src.Rows(); r++ {
			if err := out.AppendRow(src.Row(r)...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Groups returns the row indices of every distinct non-null value of column
// i, keyed by the formatted value. Keys are returned sorted.
func (f *Frame) Groups(i int) (map[string][]int, []string) {
	c := f.cols[i]
	groups := make(map[string][]int)
	for r := 0; r < c.Len(); r++ {
		if c.IsNull(r) {
			continue
		}
		k := Format(c.Value(r))
		groups[k] = append(groups[k], r)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys
}
