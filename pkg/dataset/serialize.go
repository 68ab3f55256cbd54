package dataset

import (
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Accumulator collects fragments while a filter chain is folded. Once a split
// has forked it, fragments go to both branches.
type Accumulator struct {
	filters  []Fragment
	branches []Request
}

// Append adds fragments to the chain, or to every branch after a fork.
func (a *Accumulator) Append(frags ...Fragment) {
	if a.branches == nil {
		a.filters = append(a.filters, frags...)
		return
	}
	for i := range a.branches {
		a.branches[i].Filters = append(a.branches[i].Filters, frags...)
	}
}

// Fork turns the chain into two named requests. Fragments accumulated so far
// are copied in front of each branch's own fragments.
func (a *Accumulator) Fork(first, second Request) {
	if a.branches != nil {
		panic("dataset: chain forked twice")
	}
	for _, r := range []*Request{&first, &second} {
		filters := make([]Fragment, 0, len(a.filters)+len(r.Filters))
		filters = append(filters, a.filters...)
		r.Filters = append(filters, r.Filters...)
	}
	a.branches = []Request{first, second}
	a.filters = nil
}

// Forked reports whether a split has already forked the chain.
func (a *Accumulator) Forked() bool { return a.branches != nil }

// Fragments returns the unforked chain.
func (a *Accumulator) Fragments() []Fragment { return a.filters }

// Dumper contributes its fragments to an Accumulator.
type Dumper interface {
	Dump(acc *Accumulator)
}

// Serialize folds chain, already in canonical order, into the payload the
// backend expects. name is used only when no split forks the chain.
// last_column_is_output is attached to every request of a GENERAL file.
func Serialize[D Dumper](chain []D, src meta.DataFile, name string) Payload {
	acc := &Accumulator{}
	for _, d := range chain {
		d.Dump(acc)
	}

	var reqs []Request
	if acc.Forked() {
		reqs = acc.branches
	} else {
		filters := acc.filters
		if filters == nil {
			filters = []Fragment{}
		}
		reqs = []Request{{Name: name, Filters: filters, Data: src.ID}}
	}
	if src.FileFormat == meta.General {
		for i := range reqs {
			lco := src.LastColumnIsOutput()
			reqs[i].LastColumnIsOutput = &lco
		}
	}
	return Payload{Requests: reqs}
}
