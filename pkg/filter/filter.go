// Package filter implements the filters a user can chain to turn a data file
// into training datasets. Each filter knows when it applies, which kinds may
// follow it, and how it serializes.
package filter

import (
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Filter is a filter instance bound to one editing session.
type Filter interface {
	Kind() Kind
	// Title is the human name shown to the user.
	Title() string
	// Applicable reports whether the filter can be used on the session's data file.
	Applicable() bool
	// AllowedAfter is the static set of kinds allowed right after this filter.
	AllowedAfter() KindSet
	// Valid is the validity flag checked before the filter is applied.
	Valid() bool
	dataset.Dumper
}

// base carries what every filter shares. Plain filters serialize as {name: kind}.
type base struct {
	kind Kind
	src  meta.DataFile
}

func (b *base) Kind() Kind            { return b.kind }
func (b *base) AllowedAfter() KindSet { return AllowedAfter(b.kind) }
func (b *base) Valid() bool           { return true }
func (b *base) Source() meta.DataFile { return b.src }
func (b *base) Dump(acc *dataset.Accumulator) {
	acc.Append(dataset.Plain{Name: string(b.kind)})
}
