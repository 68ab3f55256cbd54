package main

import (
	"fmt"
	"strconv"

	"github.com/wdm0006/dswizard/pkg/config"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/meta"
	"github.com/wdm0006/dswizard/pkg/wizard"
)

// applySteps drives w through the recipe steps in order. A mandatory filter
// the recipe does not configure first is applied with its defaults.
func applySteps(w *wizard.Wizard, steps []config.Step) error {
	for i, st := range steps {
		kind, opts, err := st.Kind()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if w.State() == wizard.ConfiguringNewFilter && w.Current().Kind() != kind {
			if err := w.ApplyFilter(); err != nil {
				return fmt.Errorf("step %d: apply %s: %w", i, w.Current().Kind(), err)
			}
		}
		f := w.Current()
		if f == nil || f.Kind() != kind {
			if f, err = w.SelectFilter(kind); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		if err := configure(f, opts, w.DataFile().Meta); err != nil {
			return fmt.Errorf("step %d: %s: %w", i, kind, err)
		}
		if err := w.ApplyFilter(); err != nil {
			return fmt.Errorf("step %d: %s: %w", i, kind, err)
		}
	}
	if w.State() == wizard.ConfiguringNewFilter {
		return w.ApplyFilter()
	}
	return nil
}

func configure(f filter.Filter, o config.StepOptions, m meta.Meta) error {
	switch f := f.(type) {
	case *filter.ColumnSelect:
		for col, tag := range o.Types {
			i, err := columnIndex(m, col)
			if err != nil {
				return err
			}
			if err := f.SetColumnType(i, meta.ColumnType(tag)); err != nil {
				return err
			}
		}
		for _, col := range o.Outputs {
			i, err := columnIndex(m, col)
			if err != nil {
				return err
			}
			if err := f.TryAddOutputColumn(i); err != nil {
				return err
			}
		}
	case *filter.Balance:
		if o.Sample != "" {
			return f.SetSample(filter.Sampling(o.Sample))
		}
	case *filter.Merge:
		if o.Target != 0 {
			return f.SetTarget(o.Target)
		}
	case *filter.Split:
		if o.Percent != 0 {
			if err := f.SetPercent(o.Percent); err != nil {
				return err
			}
		}
		first, second := f.Names()
		if o.Train != "" {
			first = o.Train
		}
		if o.Test != "" {
			second = o.Test
		}
		f.SetNames(first, second)
	}
	return nil
}

// columnIndex resolves a column given by name or by index.
func columnIndex(m meta.Meta, col string) (int, error) {
	for i, n := range m.Names {
		if n == col {
			return i, nil
		}
	}
	i, err := strconv.Atoi(col)
	if err != nil || i < 0 || i >= m.NumColumns {
		return 0, fmt.Errorf("no column %q", col)
	}
	return i, nil
}
