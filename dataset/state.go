package dataset

import "strings"

// State records which processing steps have been applied to the targets.
type State uint8

const (
	Smoothed State = 1 << iota
	PeaksExtracted
)

// Raw is the state of a freshly constructed Dataset.
const Raw State = 0

// Has reports whether every flag in f is set.
func (s State) Has(f State) bool {
	return s&f == f
}

func (s State) String() string {
	if s == Raw {
		return "raw"
	}
	var parts []string
	if s.Has(Smoothed) {
		parts = append(parts, "smoothed")
	}
	if s.Has(PeaksExtracted) {
		parts = append(parts, "peaks-extracted")
	}
	return strings.Join(parts, "|")
}
