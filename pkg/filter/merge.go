package filter

import (
	"fmt"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Merge appends the rows of another data file with comparable metadata.
type Merge struct {
	base
	candidates []meta.Candidate
	target     int64
}

// NewMerge computes the merge candidates among siblings. The first candidate
// is the initial target.
func NewMerge(src meta.DataFile, siblings []meta.DataFile) *Merge {
	f := &Merge{base: base{kind: KindMerge, src: src}}
	f.candidates = meta.MergeCandidates(src, siblings)
	if len(f.candidates) > 0 {
		f.target = f.candidates[0].ID
	}
	return f
}

func (f *Merge) Title() string { return "Merge" }

func (f *Merge) Applicable() bool {
	return f.src.FileFormat == meta.General && len(f.candidates) > 0
}

func (f *Merge) Candidates() []meta.Candidate {
	return append([]meta.Candidate(nil), f.candidates...)
}

func (f *Merge) Target() int64 { return f.target }

// SetTarget selects the file to merge; it must be one of the candidates.
func (f *Merge) SetTarget(id int64) error {
	for _, c := range f.candidates {
		if c.ID == id {
			f.target = id
			return nil
		}
	}
	return fmt.Errorf("data file %d cannot be merged into %d", id, f.src.ID)
}

func (f *Merge) Valid() bool {
	for _, c := range f.candidates {
		if c.ID == f.target {
			return true
		}
	}
	return false
}

func (f *Merge) Dump(acc *dataset.Accumulator) {
	acc.Append(dataset.Merge{Name: dataset.NameMerge, Datas: []int64{f.target}})
}
