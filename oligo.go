package dnastore

import "github.com/Hacktomm/dnastore/internal/prefix"

// SeqType tags the three kinds of oligo: the file header, a data segment,
// or a parity segment.
type SeqType = prefix.SeqType

// The three SeqType values, re-exported from internal/prefix so callers
// never need to import it directly.
const (
	TypeHeader = prefix.Header
	TypeData   = prefix.Data
	TypeParity = prefix.Parity
)

// Oligo is an immutable DNA string over {A,C,G,T}: an 80-base framing
// prefix followed by at most segment_nt bases of payload.
type Oligo string
