package jsonlio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/wdm0006/dswizard/pkg/frame"
	iox "github.com/wdm0006/dswizard/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int
}

// record is one decoded line with its keys in document order.
type record struct {
	keys   []string
	values map[string]any
}

type Reader struct {
	dec  *json.Decoder
	rc   io.Closer
	opt  ReaderOptions
	buf  []record
	keys []string
}

// Open opens a JSON lines file, "-" for stdin; gzip input is decompressed.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReaderFrom(rc, opt)
	r.rc = rc
	return r, nil
}

func NewReaderFrom(in io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(in)), opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// InferSchema samples records to find the columns and their types. Columns
// are ordered by first appearance.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	seen := map[string]bool{}
	for len(r.buf) < max {
		rec, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		r.buf = append(r.buf, rec)
		for _, k := range rec.keys {
			if !seen[k] {
				seen[k] = true
				r.keys = append(r.keys, k)
			}
		}
	}
	types := inferTypes(r.buf, r.keys)
	schema := frame.Schema{Fields: make([]frame.Field, len(r.keys))}
	for i, k := range r.keys {
		schema.Fields[i] = frame.Field{Name: k, Type: types[i]}
	}
	return schema, nil
}

// ReadAll loads the remaining records. Keys missing from the schema are
// ignored; missing or unconvertible values are null.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f, err := frame.New(schema)
	if err != nil {
		return nil, err
	}
	for {
		var rec record
		if len(r.buf) > 0 {
			rec, r.buf = r.buf[0], r.buf[1:]
		} else {
			rec, err = r.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", f.Rows(), err)
			}
		}
		values := make([]any, len(schema.Fields))
		for i, fd := range schema.Fields {
			values[i] = cell(fd.Type, rec.values[fd.Name])
		}
		if err := f.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// next decodes one object keeping its key order.
func (r *Reader) next() (record, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return record{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return record{}, fmt.Errorf("jsonl: expected object, got %v", tok)
	}
	rec := record{values: map[string]any{}}
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return record{}, err
		}
		k := tok.(string)
		var v any
		if err := r.dec.Decode(&v); err != nil {
			return record{}, err
		}
		if _, dup := rec.values[k]; !dup {
			rec.keys = append(rec.keys, k)
		}
		rec.values[k] = v
	}
	if _, err := r.dec.Token(); err != nil {
		return record{}, err
	}
	return rec, nil
}

// cell converts a decoded JSON value for a column of type t; nil when it
// cannot be stored.
func cell(t frame.Type, v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		var err error
		var out any
		switch t {
		case frame.TypeBool:
			out, err = strconv.ParseBool(strings.ToLower(s))
		case frame.TypeInt:
			out, err = strconv.ParseInt(s, 10, 64)
		case frame.TypeFloat:
			out, err = strconv.ParseFloat(s, 64)
		default:
			out = s
		}
		if err != nil {
			return nil
		}
		return out
	case float64:
		switch t {
		case frame.TypeInt:
			if float64(int64(x)) != x {
				return nil
			}
			return int64(x)
		case frame.TypeBool:
			return nil
		}
		return x
	case bool:
		if t != frame.TypeBool && t != frame.TypeString {
			return nil
		}
		return x
	}
	if t != frame.TypeString {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferTypes(sample []record, keys []string) []frame.Type {
	types := make([]frame.Type, len(keys))
	for i, k := range keys {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, rec := range sample {
			switch t := rec.values[k].(type) {
			case nil:
			case float64:
				num++
				if float64(int64(t)) == t {
					integer++
				}
			case bool:
				boolean++
			case string:
				s := strings.TrimSpace(t)
				switch {
				case s == "":
				case numre.MatchString(s):
					num++
					if !strings.ContainsAny(s, ".eE") {
						integer++
					}
				default:
					str++
				}
			default:
				str++
			}
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			types[i] = frame.TypeBool
		case num > 0 && str == 0 && boolean == 0:
			if integer == num {
				types[i] = frame.TypeInt
			} else {
				types[i] = frame.TypeFloat
			}
		default:
			types[i] = frame.TypeString
		}
	}
	return types
}

// ReadFile opens path, infers its schema and reads every record.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
