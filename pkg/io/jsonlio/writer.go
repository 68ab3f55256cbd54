package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/wdm0006/dswizard/pkg/frame"
	iox "github.com/wdm0006/dswizard/pkg/io/ioutils"
)

// WriteAll writes f to path as JSON lines, one object per row.
func WriteAll(path string, f *frame.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f with keys in column order. Null cells are omitted.
func Write(out io.Writer, f *frame.Frame) error {
	w := bufio.NewWriter(out)
	names := make([][]byte, f.Cols())
	for i, n := range f.Schema().Names() {
		names[i], _ = json.Marshal(n)
	}
	var line bytes.Buffer
	for r := 0; r < f.Rows(); r++ {
		line.Reset()
		line.WriteByte('{')
		first := true
		for c := 0; c < f.Cols(); c++ {
			v := f.Column(c).Value(r)
			if v == nil {
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			if !first {
				line.WriteByte(',')
			}
			first = false
			line.Write(names[c])
			line.WriteByte(':')
			line.Write(b)
		}
		line.WriteString("}\n")
		if _, err := w.Write(line.Bytes()); err != nil {
			return err
		}
	}
	return w.Flush()
}
