// Package preview runs a dataset request over a local frame, applying each
// filter fragment the way the backend does, so a chain can be checked before
// it is submitted.
package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/frame"
)

// ErrUnsupported is returned for fragments that have no tabular meaning.
var ErrUnsupported = errors.New("fragment not supported by preview")

// Resolver loads the data files named by merge fragments.
type Resolver interface {
	Frame(ctx context.Context, id int64) (*frame.Frame, error)
}

type Options struct {
	// Seed drives shuffle.
	Seed     int64
	Resolver Resolver
}

// plan is what the column fragments of a request say about the source
// columns, resolved to names so that steps stay correct after columns move.
type plan struct {
	ignore  []string
	permute []string
	outputs []string
	label   string
	skip    map[string]bool
}

func newPlan(req dataset.Request, schema frame.Schema) (plan, error) {
	names := schema.Names()
	resolve := func(idx []int) ([]string, error) {
		out := make([]string, len(idx))
		for i, c := range idx {
			if c < 0 || c >= len(names) {
				return nil, fmt.Errorf("column %d out of range (have %d)", c, len(names))
			}
			out[i] = names[c]
		}
		return out, nil
	}
	var p plan
	for _, fr := range req.Filters {
		cols, ok := fr.(dataset.Columns)
		if !ok {
			continue
		}
		got, err := resolve(cols.Columns)
		if err != nil {
			return plan{}, fmt.Errorf("%s: %w", cols.Name, err)
		}
		switch cols.Name {
		case dataset.NameIgnore:
			p.ignore = got
		case dataset.NamePermute:
			p.permute = got
		case dataset.NameOutputs:
			p.outputs = got
		}
	}
	switch {
	case len(p.outputs) > 0:
		p.label = p.outputs[len(p.outputs)-1]
	case len(names) > 0:
		p.label = names[len(names)-1]
	}
	p.skip = make(map[string]bool)
	for _, n := range append(append([]string(nil), p.outputs...), p.permute...) {
		p.skip[n] = true
	}
	if len(p.outputs) == 0 && req.LastColumnIsOutput != nil && *req.LastColumnIsOutput {
		p.skip[p.label] = true
	}
	return p, nil
}

// Build turns req into a pipeline over frames with the given schema.
func Build(req dataset.Request, schema frame.Schema, opt Options) (*frame.Pipeline, error) {
	p, err := newPlan(req, schema)
	if err != nil {
		return nil, err
	}
	pl := frame.NewPipeline()
	for _, fr := range req.Filters {
		switch f := fr.(type) {
		case dataset.Columns:
			switch f.Name {
			case dataset.NameIgnore:
				pl.Add(&Ignore{Columns: p.ignore})
			case dataset.NamePermute:
				pl.Add(&Permute{Columns: p.permute})
			case dataset.NameOutputs:
				pl.Add(&Outputs{Columns: p.outputs})
			default:
				return nil, fmt.Errorf("%s: %w", f.Name, ErrUnsupported)
			}
		case dataset.Balance:
			pl.Add(&Balance{Label: p.label, Sample: f.Sample})
		case dataset.Merge:
			if opt.Resolver == nil {
				return nil, fmt.Errorf("merge: no data file resolver")
			}
			pl.Add(&Merge{Datas: f.Datas, Resolver: opt.Resolver})
		case dataset.Split:
			pl.Add(&Split{Start: f.Start, End: f.End})
		case dataset.Plain:
			switch f.Name {
			case dataset.NameNormalize:
				pl.Add(&Normalize{Skip: p.skip})
			case dataset.NameShuffle:
				pl.Add(&Shuffle{Seed: opt.Seed})
			default:
				return nil, fmt.Errorf("%s: %w", f.Name, ErrUnsupported)
			}
		default:
			return nil, fmt.Errorf("%s: %w", fr.FilterName(), ErrUnsupported)
		}
	}
	return pl, nil
}

// Run applies req to f.
func Run(ctx context.Context, f *frame.Frame, req dataset.Request, opt Options) (*frame.Frame, error) {
	pl, err := Build(req, f.Schema(), opt)
	if err != nil {
		return nil, err
	}
	return pl.Run(ctx, f)
}
