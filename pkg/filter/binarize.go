package filter

import "github.com/wdm0006/dswizard/pkg/meta"

// Binarize encodes timeseries input as binary.
type Binarize struct{ base }

func NewBinarize(src meta.DataFile) *Binarize {
	return &Binarize{base{kind: KindBinarize, src: src}}
}

func (f *Binarize) Title() string { return "Binarize" }

func (f *Binarize) Applicable() bool {
	return f.src.FileFormat == meta.Timeseries && !f.src.Meta.BinaryInput
}
