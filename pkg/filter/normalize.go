package filter

import "github.com/wdm0006/dswizard/pkg/meta"

// Normalize scales numeric columns.
type Normalize struct{ base }

func NewNormalize(src meta.DataFile) *Normalize {
	return &Normalize{base{kind: KindNormalize, src: src}}
}

func (f *Normalize) Title() string    { return "Normalize" }
func (f *Normalize) Applicable() bool { return f.src.FileFormat == meta.General }
