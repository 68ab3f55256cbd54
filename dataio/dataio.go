// Package dataio reads and writes data files in any of the supported formats,
// picked from the file name or named explicitly.
package dataio

import (
	"fmt"

	"github.com/wdm0006/dswizard/pkg/frame"
	"github.com/wdm0006/dswizard/pkg/io/csvio"
	iox "github.com/wdm0006/dswizard/pkg/io/ioutils"
	"github.com/wdm0006/dswizard/pkg/io/jsonlio"
	"github.com/wdm0006/dswizard/pkg/io/parquetio"
)

// Options control how a data file is read. Empty Type means guess from the
// path.
type Options struct {
	Type       string // csv, jsonl or parquet
	HasHeader  bool
	Delimiter  rune
	SampleRows int
}

func (o Options) typeOf(path string) string {
	if o.Type != "" {
		return o.Type
	}
	return iox.TypeOf(path)
}

// Read loads the whole file at path.
func Read(path string, opt Options) (*frame.Frame, error) {
	switch t := opt.typeOf(path); t {
	case "csv":
		return csvio.ReadFile(path, csvio.ReaderOptions{
			HasHeader:  opt.HasHeader,
			Delimiter:  opt.Delimiter,
			SampleRows: opt.SampleRows,
		})
	case "jsonl":
		return jsonlio.ReadFile(path, jsonlio.ReaderOptions{SampleRows: opt.SampleRows})
	case "parquet":
		return parquetio.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", t)
	}
}

// Write stores f at path as typ; empty typ means guess from the path.
func Write(path, typ string, f *frame.Frame) error {
	if typ == "" {
		typ = iox.TypeOf(path)
	}
	switch typ {
	case "csv":
		return csvio.WriteAll(path, f, csvio.WriterOptions{})
	case "jsonl":
		return jsonlio.WriteAll(path, f)
	case "parquet":
		return parquetio.WriteAll(path, f)
	default:
		return fmt.Errorf("unsupported file type %q", typ)
	}
}

// Ext is the file extension written for typ.
func Ext(typ string) string {
	switch typ {
	case "jsonl":
		return ".jsonl"
	case "parquet":
		return ".parquet"
	}
	return ".csv"
}
