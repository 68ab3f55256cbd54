package preview

import (
	"context"
	"fmt"

	"github.com/wdm0006/dswizard/pkg/frame"
)

func indices(f *frame.Frame, names []string) ([]int, error) {
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i := -1
		for c, name := range f.Schema().Names() {
			if name == n {
				i = c
				break
			}
		}
		if i < 0 {
			return nil, fmt.Errorf("no column %q", n)
		}
		idx = append(idx, i)
	}
	return idx, nil
}

// Ignore drops columns.
type Ignore struct{ Columns []string }

func (t *Ignore) Name() string { return "ignore" }

func (t *Ignore) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	idx, err := indices(f, t.Columns)
	if err != nil {
		return nil, err
	}
	return f.Drop(idx)
}

// Permute turns integer columns into categorical ones by storing their
// values as strings.
type Permute struct{ Columns []string }

func (t *Permute) Name() string { return "permute" }

func (t *Permute) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	idx, err := indices(f, t.Columns)
	if err != nil {
		return nil, err
	}
	out := f
	for _, i := range idx {
		c := f.Column(i)
		if c.Type() == frame.TypeString {
			continue
		}
		s := frame.NewStringColumn(c.Name())
		for r := 0; r < c.Len(); r++ {
			if c.IsNull(r) {
				s.AppendNull()
			} else {
				s.Append(frame.Format(c.Value(r)))
			}
		}
		if out, err = out.Replace(i, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Outputs moves the output columns to the end, in the order given. Without
// outputs the frame is unchanged.
type Outputs struct{ Columns []string }

func (t *Outputs) Name() string { return "outputs" }

func (t *Outputs) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if len(t.Columns) == 0 {
		return f, nil
	}
	idx, err := indices(f, t.Columns)
	if err != nil {
		return nil, err
	}
	return f.MoveToEnd(idx)
}
