package filter

import (
	"fmt"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

const (
	DefaultSplitPercent = 70
	MinSplitPercent     = 1
	MaxSplitPercent     = 99
)

// Split divides the data into two datasets, the first keeping Percent of the rows.
type Split struct {
	base
	percent int
	first   string
	second  string
}

func NewSplit(src meta.DataFile) *Split {
	name := src.BaseName()
	return &Split{
		base:    base{kind: KindSplit, src: src},
		percent: DefaultSplitPercent,
		first:   name + "_train",
		second:  name + "_test",
	}
}

func (f *Split) Title() string    { return "Split" }
func (f *Split) Applicable() bool { return true }

func (f *Split) Percent() int { return f.percent }

func (f *Split) SetPercent(v int) error {
	if v < MinSplitPercent || v > MaxSplitPercent {
		return fmt.Errorf("split percent must be within %d..%d, got %d", MinSplitPercent, MaxSplitPercent, v)
	}
	f.percent = v
	return nil
}

// Names returns the names of the two output datasets.
func (f *Split) Names() (string, string) { return f.first, f.second }

// SetNames may leave the filter invalid; check Valid before applying it.
func (f *Split) SetNames(first, second string) {
	f.first = first
	f.second = second
}

// Samples is the number of samples that go to the first dataset.
func (f *Split) Samples() int {
	return f.percent * f.src.TotalSamples() / 100
}

func (f *Split) Valid() bool {
	return f.first != "" && f.second != "" &&
		f.percent >= MinSplitPercent && f.percent <= MaxSplitPercent
}

// Dump forks the chain into the two named dataset requests.
func (f *Split) Dump(acc *dataset.Accumulator) {
	acc.Fork(
		dataset.Request{
			Name:    f.first,
			Filters: []dataset.Fragment{dataset.Split{Name: dataset.NameSplit, Start: 0, End: f.percent}},
			Data:    f.src.ID,
		},
		dataset.Request{
			Name:    f.second,
			Filters: []dataset.Fragment{dataset.Split{Name: dataset.NameSplit, Start: f.percent, End: 100}},
			Data:    f.src.ID,
		},
	)
}
