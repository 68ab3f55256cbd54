package filter

import "github.com/wdm0006/dswizard/pkg/meta"

// Shuffle randomizes row order.
type Shuffle struct{ base }

func NewShuffle(src meta.DataFile) *Shuffle {
	return &Shuffle{base{kind: KindShuffle, src: src}}
}

func (f *Shuffle) Title() string    { return "Shuffle" }
func (f *Shuffle) Applicable() bool { return f.src.FileFormat == meta.General }
