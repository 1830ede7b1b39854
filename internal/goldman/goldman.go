// Package goldman implements the Goldman transition codec: a byte<->DNA
// mapping, via base-3 trits, where every emitted base differs from the one
// before it, making the output homopolymer-free by construction (runs of
// length 1 only, barring other sources of repetition such as the prefix).
package goldman

import (
	"errors"
	"fmt"

	"github.com/Hacktomm/dnastore/internal/bitpack"
)

// ErrTransitionInvalid is returned when decoding encounters a base that is
// not a valid Goldman transition out of the previous base — most commonly
// because the same base repeats, which the encode side never produces.
var ErrTransitionInvalid = errors.New("goldman: invalid base transition")

// ErrInvalidStart is returned when start is not one of A, C, G, T.
var ErrInvalidStart = errors.New("goldman: start base must be one of A, C, G, T")

// encodeTable[last][trit] is the base emitted after "last" for trit value
// 0, 1, or 2, in the fixed lexicographic order from spec.md §4.2.
var encodeTable = map[byte][3]byte{
	'A': {'C', 'G', 'T'},
	'C': {'G', 'T', 'A'},
	'G': {'T', 'A', 'C'},
	'T': {'A', 'C', 'G'},
}

// decodeTable[last][next] is the trit value that produced the transition
// last->next; the inverse of encodeTable.
var decodeTable = buildDecodeTable()

func buildDecodeTable() map[byte]map[byte]int {
	d := make(map[byte]map[byte]int, 4)
	for last, outs := range encodeTable {
		m := make(map[byte]int, 3)
		for trit, nxt := range outs {
			m[nxt] = trit
		}
		d[last] = m
	}
	return d
}

func validStart(start byte) bool {
	_, ok := encodeTable[start]
	return ok
}

// TritsToDNA walks trits through the transition table starting from start,
// emitting one base per trit.
func TritsToDNA(trits []int, start byte) (string, error) {
	if !validStart(start) {
		return "", ErrInvalidStart
	}
	out := make([]byte, len(trits))
	last := start
	for i, tr := range trits {
		if tr < 0 || tr > 2 {
			return "", fmt.Errorf("goldman: invalid trit %d at position %d", tr, i)
		}
		nxt := encodeTable[last][tr]
		out[i] = nxt
		last = nxt
	}
	return string(out), nil
}

// DNAToTrits reverses TritsToDNA; a repeated base (or any base outside
// ACGT) is a decode failure.
func DNAToTrits(dna string, start byte) ([]int, error) {
	if !validStart(start) {
		return nil, ErrInvalidStart
	}
	trits := make([]int, len(dna))
	last := start
	for i := 0; i < len(dna); i++ {
		base := dna[i]
		m, ok := decodeTable[last]
		if !ok {
			return nil, fmt.Errorf("%w: unknown base %q", ErrTransitionInvalid, last)
		}
		tr, ok := m[base]
		if !ok {
			return nil, fmt.Errorf("%w: %c->%c", ErrTransitionInvalid, last, base)
		}
		trits[i] = tr
		last = base
	}
	return trits, nil
}

// BytesToDNA encodes data as Goldman-coded DNA starting from start.
func BytesToDNA(data []byte, start byte) (string, error) {
	return TritsToDNA(bitpack.BytesToTrits(data), start)
}

// DNAToBytes decodes Goldman-coded DNA back to bytes, starting from start.
// length, if >= 0, truncates the result (trailing incomplete trit groups are
// always dropped regardless).
func DNAToBytes(dna string, start byte, length int) ([]byte, error) {
	trits, err := DNAToTrits(dna, start)
	if err != nil {
		return nil, err
	}
	return bitpack.TritsToBytes(trits, length)
}
