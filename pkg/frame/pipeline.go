package frame

import (
	"context"
	"fmt"
)

// Step is one transformation of a Frame.
type Step interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline runs Steps in order.
type Pipeline struct {
	steps []Step
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(s Step) *Pipeline {
	p.steps = append(p.steps, s)
	return p
}

// Steps returns the names of the steps in order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	cur := f
	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		cur, err = s.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return cur, nil
}
