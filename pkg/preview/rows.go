package preview

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/frame"
)

// Shuffle permutes the rows. The same seed gives the same order.
type Shuffle struct{ Seed int64 }

func (t *Shuffle) Name() string { return "shuffle" }

func (t *Shuffle) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	rng := rand.New(rand.NewSource(t.Seed))
	return f.Take(rng.Perm(f.Rows())), nil
}

// Split keeps the rows from Start to End percent.
type Split struct{ Start, End int }

func (t *Split) Name() string { return "split" }

func (t *Split) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if t.Start < 0 || t.End > 100 || t.Start > t.End {
		return nil, fmt.Errorf("bad range [%d, %d)", t.Start, t.End)
	}
	lo, hi := t.Start*f.Rows()/100, t.End*f.Rows()/100
	rows := make([]int, 0, hi-lo)
	for r := lo; r < hi; r++ {
		rows = append(rows, r)
	}
	return f.Take(rows), nil
}

// Balance equalizes the number of rows of each class of the Label column.
// Undersampling keeps the first rows of every class up to the smallest class
// count; oversampling and uniform repeat rows up to the largest one. Rows
// come out grouped by class. Rows with a null label are dropped.
type Balance struct {
	Label  string
	Sample string
}

func (t *Balance) Name() string { return "balance" }

func (t *Balance) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	idx, err := indices(f, []string{t.Label})
	if err != nil {
		return nil, err
	}
	groups, keys := f.Groups(idx[0])
	if len(keys) == 0 {
		return f.Take(nil), nil
	}
	target := len(groups[keys[0]])
	for _, k := range keys {
		n := len(groups[k])
		switch filter.Sampling(t.Sample) {
		case filter.Undersampling:
			target = min(target, n)
		case filter.Oversampling, filter.Uniform, "":
			target = max(target, n)
		default:
			return nil, fmt.Errorf("unknown sampling strategy %q", t.Sample)
		}
	}
	rows := make([]int, 0, target*len(keys))
	for _, k := range keys {
		g := groups[k]
		for i := 0; i < target; i++ {
			rows = append(rows, g[i%len(g)])
		}
	}
	return f.Take(rows), nil
}

// Merge appends the rows of other data files, matching columns by position.
type Merge struct {
	Datas    []int64
	Resolver Resolver
}

func (t *Merge) Name() string { return dataset.NameMerge }

func (t *Merge) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	out := f
	for _, id := range t.Datas {
		other, err := t.Resolver.Frame(ctx, id)
		if err != nil {
			return nil, err
		}
		if out, err = out.Concat(other); err != nil {
			return nil, fmt.Errorf("data file %d: %w", id, err)
		}
	}
	return out, nil
}
