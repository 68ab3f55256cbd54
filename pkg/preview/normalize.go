package preview

import (
	"context"
	"math"

	"github.com/wdm0006/dswizard/pkg/frame"
)

// Normalize rescales every numeric column not in Skip to zero mean and unit
// variance. Constant columns become zero.
type Normalize struct{ Skip map[string]bool }

func (t *Normalize) Name() string { return "normalize" }

func (t *Normalize) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	out := f
	for i := 0; i < f.Cols(); i++ {
		c := f.Column(i)
		if !c.Type().Numeric() || t.Skip[c.Name()] {
			continue
		}
		var sum, sq float64
		var n int
		for r := 0; r < c.Len(); r++ {
			if x, ok := value(c, r); ok {
				sum += x
				sq += x * x
				n++
			}
		}
		z := frame.NewFloatColumn(c.Name())
		mean, std := 0.0, 0.0
		if n > 0 {
			mean = sum / float64(n)
			std = math.Sqrt(math.Max(sq/float64(n)-mean*mean, 0))
		}
		for r := 0; r < c.Len(); r++ {
			x, ok := value(c, r)
			switch {
			case !ok:
				z.AppendNull()
			case std == 0:
				z.Append(0)
			default:
				z.Append((x - mean) / std)
			}
		}
		var err error
		if out, err = out.Replace(i, z); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func value(c frame.Column, r int) (float64, bool) {
	switch x := c.Value(r).(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	}
	return 0, false
}
