// Package profile derives data file metadata from local files, so the wizard
// can run without the backend.
package profile

import (
	"math"
	"sort"

	golearn "github.com/wdm0006/dswizard/adapters/golearn"
	"github.com/wdm0006/dswizard/pkg/frame"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Bins is the number of histogram bins of a numeric column, and the number of
// most frequent values kept for other columns.
const Bins = 10

// Profile computes the metadata of a GENERAL data file held in f.
func Profile(f *frame.Frame, withHeader bool) (meta.Meta, error) {
	m := meta.Meta{
		DataType:      meta.General,
		DataRows:      f.Rows(),
		NumColumns:    f.Cols(),
		Names:         f.Schema().Names(),
		WithHeader:    withHeader,
		Dtypes:        make([]meta.ColumnType, f.Cols()),
		UniquesPerCol: make([]int, f.Cols()),
		Histogram:     make([][]int, f.Cols()),
		Bins:          make([][]float64, f.Cols()),
		Locked:        make([]bool, f.Cols()),
	}
	for i := 0; i < f.Cols(); i++ {
		c := f.Column(i)
		m.Dtypes[i] = dtypeOf(c.Type())
		m.UniquesPerCol[i] = uniques(c)
		if c.Type().Numeric() {
			m.Histogram[i], m.Bins[i] = histogram(c)
		} else {
			m.Histogram[i], m.Bins[i] = topValues(c), []float64{}
			m.Locked[i] = true
		}
	}
	if f.Cols() > 0 {
		info, err := lastColumnInfo(f)
		if err != nil {
			return meta.Meta{}, err
		}
		m.LastColumnInfo = info
	}
	return m, nil
}

func dtypeOf(t frame.Type) meta.ColumnType {
	switch t {
	case frame.TypeInt:
		return meta.Categorical
	case frame.TypeFloat:
		return meta.Numeric
	}
	return meta.Text
}

func uniques(c frame.Column) int {
	seen := make(map[string]struct{})
	for r := 0; r < c.Len(); r++ {
		if !c.IsNull(r) {
			seen[frame.Format(c.Value(r))] = struct{}{}
		}
	}
	return len(seen)
}

func number(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return math.NaN()
}

func bounds(c frame.Column) (lo, hi float64, n int) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for r := 0; r < c.Len(); r++ {
		x := number(c.Value(r))
		if math.IsNaN(x) {
			continue
		}
		n++
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi, n
}

// histogram counts non-null values into Bins equal-width bins and returns the
// Bins+1 edges. The last bin is closed.
func histogram(c frame.Column) ([]int, []float64) {
	counts := make([]int, Bins)
	lo, hi, n := bounds(c)
	if n == 0 {
		return counts, []float64{}
	}
	width := (hi - lo) / Bins
	edges := make([]float64, Bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[Bins] = hi
	for r := 0; r < c.Len(); r++ {
		x := number(c.Value(r))
		if math.IsNaN(x) {
			continue
		}
		b := 0
		if width > 0 {
			b = int((x - lo) / width)
		}
		if b >= Bins {
			b = Bins - 1
		}
		counts[b]++
	}
	return counts, edges
}

// topValues returns the counts of the most frequent values, highest first.
func topValues(c frame.Column) []int {
	freq := make(map[string]int)
	for r := 0; r < c.Len(); r++ {
		if !c.IsNull(r) {
			freq[frame.Format(c.Value(r))]++
		}
	}
	counts := make([]int, 0, len(freq))
	for _, n := range freq {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	if len(counts) > Bins {
		counts = counts[:Bins]
	}
	return counts
}

// lastColumnInfo describes the label column. Classes are only reported for
// integer columns with at most meta.MaxClasses distinct values.
func lastColumnInfo(f *frame.Frame) (*meta.LastColumnInfo, error) {
	c := f.Column(f.Cols() - 1)
	info := &meta.LastColumnInfo{}
	u := uniques(c)
	info.Unique = &u
	if c.Type().Numeric() {
		if lo, hi, n := bounds(c); n > 0 {
			info.Min, info.Max = &lo, &hi
		}
	}
	if c.Type() != frame.TypeInt || u > meta.MaxClasses {
		return info, nil
	}
	distrib, err := golearn.ClassDistribution(f)
	if err != nil {
		return nil, err
	}
	info.Classes = make(map[string]int, len(distrib))
	for k, v := range distrib {
		info.Classes[k] = v
	}
	info.Distrib = distrib
	return info, nil
}
