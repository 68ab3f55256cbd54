package filter

import (
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Catalog holds the filter instances of one editing session, one per
// applicable kind. Instances live as long as the catalog.
type Catalog struct {
	src      meta.DataFile
	siblings []meta.DataFile
	filters  map[Kind]Filter
	kinds    KindSet
}

// NewCatalog instantiates every kind against src and keeps the applicable ones.
// siblings are the user's other data files, used for merge candidacy.
func NewCatalog(src meta.DataFile, siblings []meta.DataFile) *Catalog {
	c := &Catalog{src: src, siblings: siblings, filters: make(map[Kind]Filter)}
	for _, k := range Kinds {
		if f := c.build(k); f.Applicable() {
			c.filters[k] = f
			c.kinds = c.kinds.With(k)
		}
	}
	return c
}

func (c *Catalog) build(k Kind) Filter {
	switch k {
	case KindColumnSelect:
		return NewColumnSelect(c.src)
	case KindNormalize:
		return NewNormalize(c.src)
	case KindShuffle:
		return NewShuffle(c.src)
	case KindMerge:
		return NewMerge(c.src, c.siblings)
	case KindBalance:
		return NewBalance(c.src)
	case KindBinarize:
		return NewBinarize(c.src)
	case KindSplit:
		return NewSplit(c.src)
	}
	panic("filter: unknown kind " + string(k))
}

func (c *Catalog) Source() meta.DataFile { return c.src }

// Kinds is the set of applicable kinds.
func (c *Catalog) Kinds() KindSet { return c.kinds }

func (c *Catalog) Lookup(k Kind) (Filter, bool) {
	f, ok := c.filters[k]
	return f, ok
}

// Mandatory returns the kind that must be configured first, if any: GENERAL
// files always start with column selection.
func (c *Catalog) Mandatory() (Kind, bool) {
	if c.src.FileFormat == meta.General && c.kinds.Has(KindColumnSelect) {
		return KindColumnSelect, true
	}
	return "", false
}
