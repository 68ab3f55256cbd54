package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/wdm0006/dswizard/pkg/frame"
	iox "github.com/wdm0006/dswizard/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff
	SampleRows int  // rows used for type inference; default 100
	Strict     bool // error on short/long records instead of padding
}

type Reader struct {
	r     *csv.Reader
	rc    io.Closer
	opt   ReaderOptions
	names []string
	buf   [][]string

	shortRecords int
	longRecords  int
}

// Open opens a CSV file, "-" for stdin; gzip input is decompressed.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReaderFrom(rc, opt)
	r.rc = rc
	return r, nil
}

// NewReaderFrom reads CSV from an arbitrary reader.
func NewReaderFrom(in io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReader(in)
	rr := csv.NewReader(br)
	rr.FieldsPerRecord = -1
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		d, lazy := sniff(sample)
		rr.Comma = d
		rr.LazyQuotes = lazy
	} else {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// Names returns the column names found by InferSchema.
func (r *Reader) Names() []string { return r.names }

// InferSchema reads the header, if any, and samples rows to type the columns.
// Sampled rows are kept for ReadAll.
func (r *Reader) InferSchema() (frame.Schema, error) {
	rec, err := r.r.Read()
	if err != nil {
		return frame.Schema{}, err
	}
	if r.opt.HasHeader {
		r.names = make([]string, len(rec))
		for i := range rec {
			r.names[i] = strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		}
		if len(r.names) > 0 {
			r.names[0] = strings.TrimPrefix(r.names[0], "\ufeff")
		}
		if rec, err = r.r.Read(); err == io.EOF {
			rec = nil
		} else if err != nil {
			return frame.Schema{}, err
		}
	} else {
		r.names = make([]string, len(rec))
		for i := range r.names {
			r.names[i] = "col_" + strconv.Itoa(i)
		}
	}

	var sample [][]string
	if rec != nil {
		sample = append(sample, append([]string(nil), rec...))
	}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(sample) < max && rec != nil {
		next, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		sample = append(sample, next)
	}

	types := inferTypes(sample, len(r.names))
	schema := frame.Schema{Fields: make([]frame.Field, len(r.names))}
	for i, name := range r.names {
		schema.Fields[i] = frame.Field{Name: name, Type: types[i]}
	}
	r.buf = sample
	return schema, nil
}

// ReadAll loads the remaining records into a Frame.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f, err := frame.New(schema)
	if err != nil {
		return nil, err
	}
	for {
		var rec []string
		if len(r.buf) > 0 {
			rec, r.buf = r.buf[0], r.buf[1:]
		} else {
			rec, err = r.r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *frame.Frame, schema frame.Schema, rec []string) error {
	n := len(schema.Fields)
	switch {
	case len(rec) < n:
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows(), n, len(rec))
		}
	case len(rec) > n:
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows(), n, len(rec))
		}
	}
	values := make([]any, n)
	for i, fd := range schema.Fields {
		if i >= len(rec) {
			break
		}
		v := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if v == "" {
			continue
		}
		if fd.Type == frame.TypeBool {
			v = strings.ToLower(v)
		}
		values[i] = v
	}
	if err := f.AppendRow(values...); err != nil {
		// unparsable cells are nulls
		for i, v := range values {
			if v != nil && !parses(schema.Fields[i].Type, v.(string)) {
				values[i] = nil
			}
		}
		return f.AppendRow(values...)
	}
	return nil
}

func parses(t frame.Type, v string) bool {
	var err error
	switch t {
	case frame.TypeInt:
		_, err = strconv.ParseInt(v, 10, 64)
	case frame.TypeFloat:
		_, err = strconv.ParseFloat(v, 64)
	case frame.TypeBool:
		_, err = strconv.ParseBool(v)
	}
	return err == nil
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferTypes(rows [][]string, ncol int) []frame.Type {
	types := make([]frame.Type, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			switch lv := strings.ToLower(v); {
			case v == "":
			case numre.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			case lv == "true" || lv == "false":
				boolean++
			default:
				str++
			}
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			types[c] = frame.TypeBool
		case num > 0 && str == 0 && boolean == 0:
			if integer == num {
				types[c] = frame.TypeInt
			} else {
				types[c] = frame.TypeFloat
			}
		default:
			types[c] = frame.TypeString
		}
	}
	return types
}

// sniff picks the most frequent candidate delimiter in sample and turns on
// lazy quotes when the sample holds quotes.
func sniff(sample []byte) (rune, bool) {
	best, bestCount := ',', -1
	for _, c := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(string(sample), string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, strings.ContainsRune(string(sample), '"')
}

// Warnings summarizes repaired records.
func (r *Reader) Warnings() string {
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}

// ReadFile opens path, infers its schema and reads every row.
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
