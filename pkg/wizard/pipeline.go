package wizard

import "github.com/wdm0006/dswizard/pkg/filter"

// Pipeline is an ordered list of applied filters.
type Pipeline []filter.Filter

// Kinds returns the kinds in list order.
func (p Pipeline) Kinds() []filter.Kind {
	out := make([]filter.Kind, len(p))
	for i, f := range p {
		out[i] = f.Kind()
	}
	return out
}

// Set returns the kinds as a set.
func (p Pipeline) Set() filter.KindSet {
	var s filter.KindSet
	for _, f := range p {
		s = s.With(f.Kind())
	}
	return s
}

// Index returns the position of kind k, or -1.
func (p Pipeline) Index(k filter.Kind) int {
	for i, f := range p {
		if f.Kind() == k {
			return i
		}
	}
	return -1
}

// Insert returns a copy of p with f at position pos; pos is clamped to the list bounds.
func (p Pipeline) Insert(pos int, f filter.Filter) Pipeline {
	if pos < 0 || pos > len(p) {
		pos = len(p)
	}
	out := make(Pipeline, 0, len(p)+1)
	out = append(out, p[:pos]...)
	out = append(out, f)
	return append(out, p[pos:]...)
}

// Remove returns a copy of p without kind k and the position k held, or p and -1.
func (p Pipeline) Remove(k filter.Kind) (Pipeline, int) {
	i := p.Index(k)
	if i < 0 {
		return p, -1
	}
	out := make(Pipeline, 0, len(p)-1)
	out = append(out, p[:i]...)
	return append(out, p[i+1:]...), i
}

// Canonicalize returns p in serialization order: column-select moves to the
// end, then balance to the front, then split to the front. Split therefore
// leads whenever it is present.
func Canonicalize(p Pipeline) Pipeline {
	out := append(Pipeline(nil), p...)
	out = moveToBack(out, filter.KindColumnSelect)
	out = moveToFront(out, filter.KindBalance)
	return moveToFront(out, filter.KindSplit)
}

func moveToFront(p Pipeline, k filter.Kind) Pipeline {
	rest, i := p.Remove(k)
	if i < 0 {
		return p
	}
	return rest.Insert(0, p[i])
}

func moveToBack(p Pipeline, k filter.Kind) Pipeline {
	rest, i := p.Remove(k)
	if i < 0 {
		return p
	}
	return rest.Insert(len(rest), p[i])
}
