// Package prefix implements the 80-base self-synchronising framing header
// that precedes every oligo's payload: a constant SYNC, a two-base type
// tag, CT-coded packed integer fields, and a CT-coded CRC-8 over those
// fields.
package prefix

import (
	"errors"
	"fmt"

	"github.com/Hacktomm/dnastore/internal/bitpack"
	"github.com/Hacktomm/dnastore/internal/crc"
)

// SeqType tags the three kinds of oligo.
type SeqType byte

const (
	Header SeqType = 'H'
	Data   SeqType = 'D'
	Parity SeqType = 'P'
)

func (t SeqType) String() string {
	switch t {
	case Header:
		return "H"
	case Data:
		return "D"
	case Parity:
		return "P"
	default:
		return fmt.Sprintf("SeqType(%q)", byte(t))
	}
}

const (
	sync           = "AG"
	chunkIdxBits   = 24
	totalChunkBits = 24
	seqIdxBits     = 10
	totalSeqsBits  = 10
	fieldBits      = chunkIdxBits + totalChunkBits + seqIdxBits + totalSeqsBits // 68
	crcBits        = 8
	prefixLen      = 2 + 2 + fieldBits + crcBits // 80

	maxChunkIdx  = 1<<chunkIdxBits - 1
	maxSeqIdx    = 1<<seqIdxBits - 1
)

var typeCodes = map[SeqType]string{
	Header: "AA",
	Data:   "CC",
	Parity: "GG",
}

var codeTypes = map[string]SeqType{
	"AA": Header,
	"CC": Data,
	"GG": Parity,
}

// ErrFieldOutOfRange is returned when a prefix field exceeds its declared
// bit width: chunk_idx/total_chunks >= 2^24 or seq_idx/total_seqs >= 2^10.
var ErrFieldOutOfRange = errors.New("prefix: field value out of range")

// Info is the decoded content of a successfully parsed prefix.
type Info struct {
	SeqType     SeqType
	ChunkIdx    uint32
	TotalChunks uint32
	SeqIdx      uint16
	TotalSeqs   uint16
	Payload     string
}

func ctEncode(bits string) string {
	out := make([]byte, len(bits))
	for i := 0; i < len(bits); i++ {
		if bits[i] == '1' {
			out[i] = 'C'
		} else {
			out[i] = 'T'
		}
	}
	return string(out)
}

func ctDecode(seq string) (string, bool) {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'C':
			out[i] = '1'
		case 'T':
			out[i] = '0'
		default:
			return "", false
		}
	}
	return string(out), true
}

// Create assembles an 80-base prefix from the given fields. It fails with
// ErrFieldOutOfRange if chunkIdx/totalChunks exceed 24 bits or
// seqIdx/totalSeqs exceed 10 bits.
func Create(chunkIdx, totalChunks uint32, seqType SeqType, seqIdx, totalSeqs uint16) (string, error) {
	typeCode, ok := typeCodes[seqType]
	if !ok {
		return "", fmt.Errorf("prefix: unknown seq type %v", seqType)
	}
	if chunkIdx > maxChunkIdx || totalChunks > maxChunkIdx {
		return "", fmt.Errorf("%w: chunk_idx/total_chunks must fit 24 bits", ErrFieldOutOfRange)
	}
	if seqIdx > maxSeqIdx || totalSeqs > maxSeqIdx {
		return "", fmt.Errorf("%w: seq_idx/total_seqs must fit 10 bits", ErrFieldOutOfRange)
	}

	bits, err := packFields(chunkIdx, totalChunks, seqIdx, totalSeqs)
	if err != nil {
		return "", err
	}

	fieldBytes := bitpack.PackBits(bits)
	crc8 := crc.CRC8(fieldBytes)
	crcBitsStr, err := bitpack.IntToBits(uint64(crc8), crcBits)
	if err != nil {
		return "", err
	}

	out := sync + typeCode + ctEncode(bits) + ctEncode(crcBitsStr)
	if len(out) != prefixLen {
		return "", fmt.Errorf("prefix: assembled length %d, want %d", len(out), prefixLen)
	}
	return out, nil
}

func packFields(chunkIdx, totalChunks uint32, seqIdx, totalSeqs uint16) (string, error) {
	a, err := bitpack.IntToBits(uint64(chunkIdx), chunkIdxBits)
	if err != nil {
		return "", err
	}
	b, err := bitpack.IntToBits(uint64(totalChunks), totalChunkBits)
	if err != nil {
		return "", err
	}
	c, err := bitpack.IntToBits(uint64(seqIdx), seqIdxBits)
	if err != nil {
		return "", err
	}
	d, err := bitpack.IntToBits(uint64(totalSeqs), totalSeqsBits)
	if err != nil {
		return "", err
	}
	return a + b + c + d, nil
}

// Parse validates and decodes the leading 80 bases of oligo. It returns
// ok=false (never an error) on any framing problem — short input, bad
// SYNC, unknown TYPE, non-CT characters in the coded region, a CRC-8
// mismatch, or a header-type prefix whose fields are not chunk_idx=0,
// seq_idx=0, total_seqs=1 — mirroring spec.md §4.6's "silently drop"
// contract.
func Parse(oligo string) (Info, bool) {
	if len(oligo) < prefixLen {
		return Info{}, false
	}
	if oligo[0:2] != sync {
		return Info{}, false
	}
	seqType, ok := codeTypes[oligo[2:4]]
	if !ok {
		return Info{}, false
	}

	fieldCT := oligo[4 : 4+fieldBits]
	bits, ok := ctDecode(fieldCT)
	if !ok {
		return Info{}, false
	}

	crcCT := oligo[4+fieldBits : prefixLen]
	crcBitsStr, ok := ctDecode(crcCT)
	if !ok {
		return Info{}, false
	}
	gotCRC, err := bitpack.BitsToInt(crcBitsStr)
	if err != nil {
		return Info{}, false
	}

	fieldBytes := bitpack.PackBits(bits)
	if crc.CRC8(fieldBytes) != byte(gotCRC) {
		return Info{}, false
	}

	chunkIdx, err := bitpack.BitsToInt(bits[0:chunkIdxBits])
	if err != nil {
		return Info{}, false
	}
	totalChunks, err := bitpack.BitsToInt(bits[chunkIdxBits : chunkIdxBits+totalChunkBits])
	if err != nil {
		return Info{}, false
	}
	seqIdx, err := bitpack.BitsToInt(bits[chunkIdxBits+totalChunkBits : chunkIdxBits+totalChunkBits+seqIdxBits])
	if err != nil {
		return Info{}, false
	}
	totalSeqs, err := bitpack.BitsToInt(bits[chunkIdxBits+totalChunkBits+seqIdxBits:])
	if err != nil {
		return Info{}, false
	}
	if seqType == Header && (chunkIdx != 0 || seqIdx != 0 || totalSeqs != 1) {
		return Info{}, false
	}

	return Info{
		SeqType:     seqType,
		ChunkIdx:    uint32(chunkIdx),
		TotalChunks: uint32(totalChunks),
		SeqIdx:      uint16(seqIdx),
		TotalSeqs:   uint16(totalSeqs),
		Payload:     oligo[prefixLen:],
	}, true
}
