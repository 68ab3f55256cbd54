// Package meta describes uploaded data files the way the backend reports them.
// Everything here is read-only to the wizard.
package meta

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Format is the file-format tag of a data file.
type Format string

const (
	General    Format = "GENERAL"
	Timeseries Format = "TIMESERIES"
	Images     Format = "IMAGES"
)

// ColumnType is the per-column type tag found in Meta.Dtypes.
type ColumnType string

const (
	Numeric     ColumnType = "f"
	Categorical ColumnType = "i"
	Text        ColumnType = "S"
	Ignored     ColumnType = "-"
)

// Category is the coarse type used to lock output columns together.
type Category string

const (
	CategoryNone        Category = ""
	CategoryCategorical Category = "categorical"
	CategoryRegression  Category = "regression"
)

// Category maps integer and string columns to categorical and float columns
// to regression. Ignored columns have no category.
func (t ColumnType) Category() Category {
	switch t {
	case Numeric:
		return CategoryRegression
	case Categorical, Text:
		return CategoryCategorical
	default:
		return CategoryNone
	}
}

func (t ColumnType) Valid() bool {
	switch t {
	case Numeric, Categorical, Text, Ignored:
		return true
	}
	return false
}

// LastColumnInfo describes the designated label column of a GENERAL file.
type LastColumnInfo struct {
	// Classes is nil when the column holds non-integer values or more than
	// MaxClasses distinct values.
	Classes map[string]int `json:"classes"`
	// Distrib is the class distribution; nil when no label column exists.
	Distrib map[string]int `json:"distrib,omitempty"`
	Min     *float64       `json:"min,omitempty"`
	Max     *float64       `json:"max,omitempty"`
	Unique  *int           `json:"unique,omitempty"`

	// key presence as decoded: a null distrib still counts as reported, an
	// absent classes key is not the same as a null one.
	distribSent   bool
	classesAbsent bool
}

func (l *LastColumnInfo) UnmarshalJSON(b []byte) error {
	type plain LastColumnInfo
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = LastColumnInfo(p)
	_, l.distribSent = keys["distrib"]
	_, hasClasses := keys["classes"]
	l.classesAbsent = !hasClasses
	return nil
}

func (l LastColumnInfo) MarshalJSON() ([]byte, error) {
	type plain LastColumnInfo
	out := struct {
		plain
		Classes *map[string]int `json:"classes,omitempty"`
		Distrib *map[string]int `json:"distrib,omitempty"`
	}{plain: plain(l)}
	if !l.classesAbsent {
		out.Classes = &l.Classes
	}
	if l.Distrib != nil || l.distribSent {
		out.Distrib = &l.Distrib
	}
	return json.Marshal(out)
}

// HasClasses reports whether the label column counts as classes. Only an
// explicit null (or a nil map built in Go) says it does not.
func (l *LastColumnInfo) HasClasses() bool {
	return l != nil && (l.Classes != nil || l.classesAbsent)
}

// HasDistrib reports whether a class distribution was reported, even a null one.
func (l *LastColumnInfo) HasDistrib() bool {
	return l != nil && (l.Distrib != nil || l.distribSent)
}

// MaxClasses is the largest number of distinct label values still reported as classes.
const MaxClasses = 200

// Meta is the statistics block attached to a data file.
type Meta struct {
	DataType    Format `json:"data_type"`
	DataRows    int    `json:"data_rows"`
	Size        int64  `json:"size,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`

	// GENERAL
	NumColumns     int             `json:"num_columns,omitempty"`
	Names          []string        `json:"names,omitempty"`
	WithHeader     bool            `json:"with_header,omitempty"`
	Dtypes         []ColumnType    `json:"dtypes,omitempty"`
	UniquesPerCol  []int           `json:"uniques_per_col,omitempty"`
	Histogram      [][]int         `json:"histogram,omitempty"`
	Bins           [][]float64     `json:"bins,omitempty"`
	Locked         []bool          `json:"locked,omitempty"`
	LastColumnInfo *LastColumnInfo `json:"last_column_info,omitempty"`

	// TIMESERIES
	InputSize    int  `json:"input_size,omitempty"`
	OutputSize   int  `json:"output_size,omitempty"`
	BinaryInput  bool `json:"binary_input,omitempty"`
	BinaryOutput bool `json:"binary_output,omitempty"`
	MinTimesteps int  `json:"min_timesteps,omitempty"`
	MaxTimesteps int  `json:"max_timesteps,omitempty"`

	// IMAGES and TIMESERIES
	Classes map[string]int `json:"classes,omitempty"`
}

// HasUniques reports whether per-column unique-value statistics are present.
func (m Meta) HasUniques() bool { return m.UniquesPerCol != nil }

// HasDistrib reports whether a label-column class distribution exists.
func (m Meta) HasDistrib() bool { return m.LastColumnInfo.HasDistrib() }

// ColumnName returns the display name of column i.
func (m Meta) ColumnName(i int) string {
	if i >= 0 && i < len(m.Names) {
		return m.Names[i]
	}
	return "col_" + strconv.Itoa(i)
}

// DataFile is an uploaded source file together with its metadata.
type DataFile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FileFormat Format `json:"file_format"`
	Meta       Meta   `json:"meta"`
}

// BaseName is the file name up to its first dot.
func (df DataFile) BaseName() string {
	name, _, _ := strings.Cut(df.Name, ".")
	return name
}

// LastColumnIsOutput reports whether the last column of a GENERAL file carries
// classes and is therefore used as the model output.
func (df DataFile) LastColumnIsOutput() bool {
	return df.FileFormat == General && df.Meta.LastColumnInfo.HasClasses()
}

// TotalSamples is the sample count: the sum of classes for image archives,
// the row count otherwise.
func (df DataFile) TotalSamples() int {
	if df.FileFormat == Images {
		total := 0
		for _, n := range df.Meta.Classes {
			total += n
		}
		return total
	}
	return df.Meta.DataRows
}
