package filter

import (
	"fmt"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Sampling is the strategy used to balance label classes.
type Sampling string

const (
	Uniform       Sampling = "uniform"
	Oversampling  Sampling = "oversampling"
	Undersampling Sampling = "undersampling"
)

func ParseSampling(s string) (Sampling, error) {
	switch v := Sampling(s); v {
	case Uniform, Oversampling, Undersampling:
		return v, nil
	}
	return "", fmt.Errorf("unknown sampling strategy %q", s)
}

// Balance equalizes the number of samples per label class.
type Balance struct {
	base
	sample Sampling
}

func NewBalance(src meta.DataFile) *Balance {
	return &Balance{base: base{kind: KindBalance, src: src}, sample: Uniform}
}

func (f *Balance) Title() string { return "Balance" }

func (f *Balance) Applicable() bool {
	return f.src.FileFormat == meta.General && f.src.Meta.HasDistrib()
}

func (f *Balance) Sample() Sampling { return f.sample }

func (f *Balance) SetSample(s Sampling) error {
	if _, err := ParseSampling(string(s)); err != nil {
		return err
	}
	f.sample = s
	return nil
}

// Distribution returns the label class counts of the data file.
func (f *Balance) Distribution() map[string]int {
	if !f.src.Meta.HasDistrib() {
		return nil
	}
	out := make(map[string]int, len(f.src.Meta.LastColumnInfo.Distrib))
	for k, v := range f.src.Meta.LastColumnInfo.Distrib {
		out[k] = v
	}
	return out
}

func (f *Balance) Dump(acc *dataset.Accumulator) {
	acc.Append(dataset.Balance{Name: dataset.NameBalance, Sample: string(f.sample)})
}
