package meta

// Comparable reports whether two files have structurally compatible metadata,
// i.e. whether one can be merged into the other.
func Comparable(a, b Meta) bool {
	switch a.DataType {
	case Timeseries:
		return a.BinaryInput == b.BinaryInput &&
			a.BinaryOutput == b.BinaryOutput &&
			a.InputSize == b.InputSize &&
			a.OutputSize == b.OutputSize
	case General:
		return a.NumColumns == b.NumColumns
	case Images:
		return true
	default:
		return false
	}
}

// Candidate is a sibling file that can be merged into the source file.
type Candidate struct {
	ID   int64
	Name string
}

// MergeCandidates returns the siblings sharing src's file format whose metadata
// is comparable with src, in sibling order. src itself is never a candidate.
func MergeCandidates(src DataFile, siblings []DataFile) []Candidate {
	var out []Candidate
	for _, s := range siblings {
		if s.ID == src.ID || s.FileFormat != src.FileFormat {
			continue
		}
		if !Comparable(src.Meta, s.Meta) {
			continue
		}
		out = append(out, Candidate{ID: s.ID, Name: s.Name})
	}
	return out
}
