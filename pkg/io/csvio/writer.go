package csvio

import (
	"encoding/csv"
	"io"

	"github.com/wdm0006/dswizard/pkg/frame"
	iox "github.com/wdm0006/dswizard/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
	NoHeader  bool
}

// WriteAll writes f to path, "-" for stdout; a ".gz" path is compressed.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as CSV.
func Write(out io.Writer, f *frame.Frame, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if !opt.NoHeader {
		if err := w.Write(f.Schema().Names()); err != nil {
			return err
		}
	}
	row := make([]string, f.Cols())
	for r := 0; r < f.Rows(); r++ {
		for c := range row {
			row[c] = frame.Format(f.Column(c).Value(r))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
