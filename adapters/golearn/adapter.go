// Package golearn converts frames to and from golearn instances and derives
// label statistics with golearn.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/wdm0006/dswizard/pkg/frame"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns become float attributes except the last one, which is the class
// attribute and is categorical unless it holds floats. Null floats are NaN.
func ToDenseInstances(f *frame.Frame) (*base.DenseInstances, error) {
	if f.Cols() == 0 {
		return nil, fmt.Errorf("golearn: frame has no columns")
	}
	last := f.Cols() - 1
	attrs := make([]base.Attribute, f.Cols())
	for i, fd := range f.Schema().Fields {
		if fd.Type == frame.TypeFloat || (fd.Type == frame.TypeInt && i != last) {
			attrs[i] = base.NewFloatAttribute(fd.Name)
			continue
		}
		ca := base.NewCategoricalAttribute()
		ca.SetName(fd.Name)
		attrs[i] = ca
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}
	for r := 0; r < f.Rows(); r++ {
		for c, a := range attrs {
			v := f.Column(c).Value(r)
			if _, ok := a.(*base.FloatAttribute); ok {
				x := math.NaN()
				switch t := v.(type) {
				case float64:
					x = t
				case int64:
					x = float64(t)
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(x))
				continue
			}
			if v != nil {
				inst.Set(specs[c], r, a.GetSysValFromString(frame.Format(v)))
			}
		}
	}
	if err := inst.AddClassAttribute(attrs[last]); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes become float columns, everything else strings.
func FromDenseInstances(inst *base.DenseInstances) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	cols := make([]frame.Column, len(attrs))
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
		if _, ok := a.(*base.FloatAttribute); ok {
			cols[i] = frame.NewFloatColumn(a.GetName())
		} else {
			cols[i] = frame.NewStringColumn(a.GetName())
		}
	}
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		for c, a := range attrs {
			raw := inst.Get(specs[c], r)
			switch col := cols[c].(type) {
			case *frame.FloatColumn:
				if x := base.UnpackBytesToFloat(raw); math.IsNaN(x) {
					col.AppendNull()
				} else {
					col.Append(x)
				}
			case *frame.StringColumn:
				col.Append(a.GetStringFromSysVal(raw))
			}
		}
	}
	return frame.FromColumns(cols...)
}

// ClassDistribution counts the rows of each class of the last column. Rows
// with a null label are not counted.
func ClassDistribution(f *frame.Frame) (map[string]int, error) {
	if f.Cols() == 0 {
		return nil, fmt.Errorf("golearn: frame has no columns")
	}
	last := f.Cols() - 1
	label := f.Column(last)
	rows := make([]int, 0, f.Rows())
	for r := 0; r < f.Rows(); r++ {
		if !label.IsNull(r) {
			rows = append(rows, r)
		}
	}
	lf, err := f.Select([]int{last})
	if err != nil {
		return nil, err
	}
	inst, err := ToDenseInstances(lf.Take(rows))
	if err != nil {
		return nil, err
	}
	return base.GetClassDistribution(inst), nil
}
