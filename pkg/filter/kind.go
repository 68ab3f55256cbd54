package filter

import "strings"

// Kind identifies a filter.
type Kind string

const (
	KindColumnSelect Kind = "column-select"
	KindNormalize    Kind = "normalize"
	KindShuffle      Kind = "shuffle"
	KindBalance      Kind = "balance"
	KindBinarize     Kind = "binarize"
	KindMerge        Kind = "merge"
	KindSplit        Kind = "split"
)

// Kinds lists every kind in catalog order. Sets iterate in this order.
var Kinds = []Kind{
	KindColumnSelect,
	KindNormalize,
	KindShuffle,
	KindMerge,
	KindBalance,
	KindBinarize,
	KindSplit,
}

// ParseKind accepts a kind name; "column select" is accepted as an alias.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k Kind) bit() KindSet {
	for i, kk := range Kinds {
		if kk == k {
			return 1 << uint(i)
		}
	}
	return 0
}

// KindSet is a set of kinds.
type KindSet uint8

// SetOf builds a set from kinds.
func SetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= k.bit()
	}
	return s
}

// AllKinds contains every kind.
var AllKinds = SetOf(Kinds...)

func (s KindSet) Has(k Kind) bool             { return s&k.bit() != 0 }
func (s KindSet) With(k Kind) KindSet         { return s | k.bit() }
func (s KindSet) Without(k Kind) KindSet      { return s &^ k.bit() }
func (s KindSet) Intersect(o KindSet) KindSet { return s & o }
func (s KindSet) Minus(o KindSet) KindSet     { return s &^ o }
func (s KindSet) Empty() bool                 { return s == 0 }

// Kinds returns the members in catalog order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	ks := s.Kinds()
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = string(k)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// allowedAfter holds, for each kind, the kinds that may be appended right after it.
var allowedAfter = map[Kind]KindSet{
	KindColumnSelect: SetOf(KindNormalize, KindShuffle, KindBinarize, KindSplit, KindBalance, KindMerge),
	KindNormalize:    SetOf(KindShuffle, KindBinarize, KindSplit, KindBalance, KindMerge, KindColumnSelect),
	KindShuffle:      SetOf(KindNormalize, KindBinarize, KindSplit, KindBalance, KindMerge, KindColumnSelect),
	KindBalance:      SetOf(KindNormalize, KindShuffle, KindBinarize, KindSplit, KindMerge, KindColumnSelect),
	KindBinarize:     SetOf(KindNormalize, KindShuffle, KindSplit, KindBalance, KindMerge),
	KindMerge:        SetOf(KindNormalize, KindShuffle, KindBinarize, KindSplit, KindBalance),
	KindSplit:        SetOf(KindNormalize, KindShuffle, KindBinarize, KindBalance, KindMerge, KindColumnSelect),
}

// AllowedAfter returns the kinds permitted immediately after k.
func AllowedAfter(k Kind) KindSet { return allowedAfter[k] }
