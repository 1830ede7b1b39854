// Package consensus reconstructs a single DNA read from a set of noisy
// replicate reads of the same oligo, by per-column majority vote.
package consensus

import "github.com/cespare/xxhash/v2"

// Vote returns the column-wise majority consensus of reads: empty string
// for no reads, the read itself for exactly one, otherwise for each column
// i in 0..maxLen-1 the most frequent base among reads long enough to have
// one, breaking ties by first-seen column order (spec.md §4.9, §9 Design
// Notes: "most occurrences, breaking ties by first-seen").
func Vote(reads []string) string {
	switch len(reads) {
	case 0:
		return ""
	case 1:
		return reads[0]
	}

	maxLen := 0
	for _, r := range reads {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}

	out := make([]byte, maxLen)
	for i := 0; i < maxLen; i++ {
		out[i] = majorityAt(reads, i)
	}
	return string(out)
}

func majorityAt(reads []string, col int) byte {
	var order []byte
	counts := make(map[byte]int)
	for _, r := range reads {
		if col >= len(r) {
			continue
		}
		b := r[col]
		if _, seen := counts[b]; !seen {
			order = append(order, b)
		}
		counts[b]++
	}
	best := order[0]
	bestCount := counts[best]
	for _, b := range order[1:] {
		if counts[b] > bestCount {
			best = b
			bestCount = counts[b]
		}
	}
	return best
}

// Group is a set of replicate reads believed to carry the same payload.
// Every read added contributes its full weight to the column vote (spec.md
// §4.9 counts occurrences across all reads, not distinct values); xxhash
// fingerprints are kept alongside purely to report how many of the added
// reads were byte-identical, for diagnostics and the CLI's batch-decode
// summary.
type Group struct {
	reads    []string
	seenHash map[uint64]bool
	distinct int
}

// NewGroup creates an empty replicate group.
func NewGroup() *Group {
	return &Group{seenHash: make(map[uint64]bool)}
}

// Add records one replicate read. It always counts toward the vote; the
// xxhash fingerprint only feeds DistinctCount bookkeeping.
func (g *Group) Add(read string) {
	g.reads = append(g.reads, read)
	h := xxhash.Sum64String(read)
	if !g.seenHash[h] {
		g.seenHash[h] = true
		g.distinct++
	}
}

// Len reports how many reads were added in total.
func (g *Group) Len() int { return len(g.reads) }

// DistinctCount reports how many content-distinct reads were added.
func (g *Group) DistinctCount() int { return g.distinct }

// Consensus runs Vote over every read added to the group, in insertion
// order, so each replicate copy carries its full weight in the column
// vote (spec.md §8 property 6's resilience depends on this).
func (g *Group) Consensus() string {
	return Vote(g.reads)
}
