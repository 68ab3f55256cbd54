// Package dataset holds the wire format of dataset-creation requests and the
// serializer that folds a filter chain into one or two of them.
package dataset

// Fragment is one element of a request's filter list.
type Fragment interface {
	FilterName() string
}

// Plain is a fragment that carries nothing but its name (normalize, shuffle, binarize).
type Plain struct {
	Name string `json:"name"`
}

func (f Plain) FilterName() string { return f.Name }

// Balance selects the class balancing strategy.
type Balance struct {
	Name   string `json:"name"`
	Sample string `json:"sample"`
}

func (f Balance) FilterName() string { return f.Name }

// Merge appends the rows of other data files.
type Merge struct {
	Name  string  `json:"name"`
	Datas []int64 `json:"datas"`
}

func (f Merge) FilterName() string { return f.Name }

// Columns is the ignore, permute and outputs fragments emitted by column selection.
type Columns struct {
	Name    string `json:"name"`
	Columns []int  `json:"columns"`
}

func (f Columns) FilterName() string { return f.Name }

// NewColumns copies cols so that an empty selection encodes as [] rather than null.
func NewColumns(name string, cols []int) Columns {
	return Columns{Name: name, Columns: append([]int{}, cols...)}
}

// Split keeps the [Start, End) percent range of the rows.
type Split struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (f Split) FilterName() string { return f.Name }

// Fragment names understood by the backend.
const (
	NameNormalize = "normalize"
	NameShuffle   = "shuffle"
	NameBinarize  = "binarize"
	NameBalance   = "balance"
	NameMerge     = "merge"
	NameSplit     = "split"
	NameIgnore    = "ignore"
	NamePermute   = "permute"
	NameOutputs   = "outputs"
)
