package filter

import (
	"fmt"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// OutputColumn is a column picked as model output.
type OutputColumn struct {
	Name  string
	Index int
}

// ColumnSelect lets the user override column types, ignore columns and pick
// the output columns. It serializes as three fragments: ignore, permute and
// outputs.
type ColumnSelect struct {
	base
	values   []meta.ColumnType
	outputs  []OutputColumn
	category meta.Category
}

func NewColumnSelect(src meta.DataFile) *ColumnSelect {
	f := &ColumnSelect{base: base{kind: KindColumnSelect, src: src}}
	f.values = append([]meta.ColumnType(nil), src.Meta.Dtypes...)
	return f
}

func (f *ColumnSelect) Title() string { return "Select Columns" }

func (f *ColumnSelect) Applicable() bool {
	return f.src.FileFormat == meta.General && f.src.Meta.HasUniques()
}

// Values returns the current type of every column.
func (f *ColumnSelect) Values() []meta.ColumnType {
	return append([]meta.ColumnType(nil), f.values...)
}

func (f *ColumnSelect) ColumnType(col int) (meta.ColumnType, bool) {
	if col < 0 || col >= len(f.values) {
		return "", false
	}
	return f.values[col], true
}

// AllowedTypes lists the types column col may take: its detected type and
// ignore, plus numeric for unlocked integer columns.
func (f *ColumnSelect) AllowedTypes(col int) []meta.ColumnType {
	if col < 0 || col >= len(f.src.Meta.Dtypes) {
		return nil
	}
	orig := f.src.Meta.Dtypes[col]
	out := []meta.ColumnType{orig}
	if orig == meta.Categorical && !f.locked(col) {
		out = append(out, meta.Numeric)
	}
	if orig != meta.Ignored {
		out = append(out, meta.Ignored)
	}
	return out
}

func (f *ColumnSelect) locked(col int) bool {
	l := f.src.Meta.Locked
	return col < len(l) && l[col]
}

func (f *ColumnSelect) columnError(col int, reason error) error {
	return &ColumnError{Column: col, Name: f.src.Meta.ColumnName(col), Reason: reason}
}

// SetColumnType changes the type of one column. A selected output column can
// neither be ignored nor moved to another category.
func (f *ColumnSelect) SetColumnType(col int, t meta.ColumnType) error {
	if col < 0 || col >= len(f.values) {
		return f.columnError(col, ErrNoSuchColumn)
	}
	allowed := false
	for _, a := range f.AllowedTypes(col) {
		if a == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return f.columnError(col, ErrColumnTypeNotAllowed)
	}
	if f.outputPos(col) >= 0 {
		if t == meta.Ignored {
			return f.columnError(col, ErrIgnoreSelectedColumn)
		}
		if t.Category() != f.category {
			return f.columnError(col, ErrCategoryLocked)
		}
	}
	f.values[col] = t
	return nil
}

// Outputs returns the picked output columns in selection order.
func (f *ColumnSelect) Outputs() []OutputColumn {
	return append([]OutputColumn(nil), f.outputs...)
}

func (f *ColumnSelect) HasOutputs() bool { return len(f.outputs) > 0 }

// OutputCategory is the category every output column must share; empty when
// no output column is picked.
func (f *ColumnSelect) OutputCategory() meta.Category { return f.category }

func (f *ColumnSelect) outputPos(col int) int {
	for i, o := range f.outputs {
		if o.Index == col {
			return i
		}
	}
	return -1
}

// TryAddOutputColumn picks column col as an output. Ignored columns and
// columns of a different category than the ones already picked are rejected
// without changing anything. Picking a column twice is a no-op.
func (f *ColumnSelect) TryAddOutputColumn(col int) error {
	t, ok := f.ColumnType(col)
	if !ok {
		return f.columnError(col, ErrNoSuchColumn)
	}
	if t == meta.Ignored {
		return f.columnError(col, ErrIgnoredColumn)
	}
	c := t.Category()
	if f.category != meta.CategoryNone && c != f.category {
		return f.columnError(col, ErrCategoryMismatch)
	}
	if f.outputPos(col) >= 0 {
		return nil
	}
	f.outputs = append(f.outputs, OutputColumn{Name: f.src.Meta.ColumnName(col), Index: col})
	f.category = c
	return nil
}

// RemoveOutputColumn drops column col from the outputs. Removing the last
// output releases the category lock.
func (f *ColumnSelect) RemoveOutputColumn(col int) bool {
	i := f.outputPos(col)
	if i < 0 {
		return false
	}
	f.outputs = append(f.outputs[:i], f.outputs[i+1:]...)
	if len(f.outputs) == 0 {
		f.category = meta.CategoryNone
	}
	return true
}

// MoveOutputColumn moves the output at position from to position to.
func (f *ColumnSelect) MoveOutputColumn(from, to int) error {
	n := len(f.outputs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("output position out of range: %d -> %d (have %d)", from, to, n)
	}
	moved := f.outputs[from]
	f.outputs = append(f.outputs[:from], f.outputs[from+1:]...)
	f.outputs = append(f.outputs[:to], append([]OutputColumn{moved}, f.outputs[to:]...)...)
	return nil
}

// ResetOutputs clears the picked outputs and the category lock.
func (f *ColumnSelect) ResetOutputs() {
	f.outputs = nil
	f.category = meta.CategoryNone
}

func (f *ColumnSelect) Dump(acc *dataset.Accumulator) {
	var ignores, permutes []int
	for i, t := range f.values {
		switch t {
		case meta.Ignored:
			ignores = append(ignores, i)
		case meta.Categorical:
			permutes = append(permutes, i)
		}
	}
	outputs := make([]int, len(f.outputs))
	for i, o := range f.outputs {
		outputs[i] = o.Index
	}
	acc.Append(
		dataset.NewColumns(dataset.NameIgnore, ignores),
		dataset.NewColumns(dataset.NamePermute, permutes),
		dataset.NewColumns(dataset.NameOutputs, outputs),
	)
}
