package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/dswizard/pkg/frame"
)

// Reader reads flat parquet files. Nested columns are not supported.
type Reader struct {
	file   *os.File
	reader *parquet.Reader
	schema frame.Schema
}

// OpenReader opens path and maps its top-level fields, in file order, to a
// frame schema.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r := parquet.NewReader(pf)
	schema, err := schemaOf(r.Schema())
	if err != nil {
		_ = r.Close()
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Reader{file: f, reader: r, schema: schema}, nil
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() frame.Schema { return r.schema }

func (r *Reader) ReadAll() (*frame.Frame, error) {
	f, err := frame.New(r.schema)
	if err != nil {
		return nil, err
	}
	buf := make([]parquet.Row, 1024)
	values := make([]any, len(r.schema.Fields))
	for {
		n, err := r.reader.ReadRows(buf)
		for _, row := range buf[:n] {
			for i := range values {
				values[i] = nil
			}
			for _, v := range row {
				if c := v.Column(); c < len(values) {
					values[c] = valueOf(v)
				}
			}
			if err := f.AppendRow(values...); err != nil {
				return nil, err
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func schemaOf(s *parquet.Schema) (frame.Schema, error) {
	fields := s.Fields()
	out := frame.Schema{Fields: make([]frame.Field, len(fields))}
	for i, fd := range fields {
		if !fd.Leaf() {
			return frame.Schema{}, fmt.Errorf("column %q is nested", fd.Name())
		}
		var t frame.Type
		switch fd.Type().Kind() {
		case parquet.Boolean:
			t = frame.TypeBool
		case parquet.Int32, parquet.Int64:
			t = frame.TypeInt
		case parquet.Float, parquet.Double:
			t = frame.TypeFloat
		default:
			t = frame.TypeString
		}
		out.Fields[i] = frame.Field{Name: fd.Name(), Type: t}
	}
	return out, nil
}

func valueOf(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	}
	return string(v.ByteArray())
}

// ReadFile reads every row of the parquet file at path.
func ReadFile(path string) (*frame.Frame, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}
