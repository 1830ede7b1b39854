// Package constraints implements the biological acceptability predicate
// applied to Goldman-coded DNA before it is emitted: a GC-content window and
// a maximum homopolymer run length.
package constraints

// GCContent returns the fraction of seq that is G or C. An empty sequence
// has GC content 0.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// MaxRunLength returns the length of the longest run of identical
// consecutive bases in seq (0 for an empty sequence).
func MaxRunLength(seq string) int {
	if len(seq) == 0 {
		return 0
	}
	longest, cur := 1, 1
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			cur++
			if cur > longest {
				longest = cur
			}
		} else {
			cur = 1
		}
	}
	return longest
}

// Params bounds the constraint predicate: the maximum allowed homopolymer
// run and the accepted [GCMin, GCMax] fraction window.
type Params struct {
	MaxRun int
	GCMin  float64
	GCMax  float64
}

// Default matches spec.md §4.3's defaults: max_run=3, gc in [0.40, 0.60].
var Default = Params{MaxRun: 3, GCMin: 0.40, GCMax: 0.60}

// Passes reports whether seq satisfies p: non-empty, no run longer than
// p.MaxRun, and GC content within [p.GCMin, p.GCMax].
func Passes(seq string, p Params) bool {
	if len(seq) == 0 {
		return false
	}
	if MaxRunLength(seq) > p.MaxRun {
		return false
	}
	gc := GCContent(seq)
	return gc >= p.GCMin && gc <= p.GCMax
}
