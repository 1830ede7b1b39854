package dnastore

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Hacktomm/dnastore/internal/constraints"
	"github.com/Hacktomm/dnastore/internal/crc"
	"github.com/Hacktomm/dnastore/internal/fileio"
	"github.com/Hacktomm/dnastore/internal/goldman"
	"github.com/Hacktomm/dnastore/internal/prefix"
	"github.com/Hacktomm/dnastore/internal/rs"
)

// reseedStarts is the fixed search order spec.md §4.3 requires: 'A' must be
// tried first, since it is the only start the decoder ever assumes.
var reseedStarts = [4]byte{'A', 'C', 'G', 'T'}

// EncodeFile reads path fully, then releases the handle before any DNA
// processing (spec.md §5), and returns the ordered oligo list.
func EncodeFile(path string, p Params) ([]Oligo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dnastore: open %s: %w", path, err)
	}
	if err := fileio.HintSequential(f); err != nil {
		p.logger().Debug("fadviseFailed", "path", path, "err", err)
	}
	data, err := io.ReadAll(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("dnastore: read %s: %w", path, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("dnastore: close %s: %w", path, closeErr)
	}
	return EncodeBytes(data, p)
}

// EncodeBytes implements the full encoder pipeline of spec.md §4.7: a
// header oligo followed by, per chunk, CRC32-append, RS encode, constrained
// Goldman-DNA, segmentation, and replication.
func EncodeBytes(data []byte, p Params) ([]Oligo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger := p.logger()

	fileSize := uint64(len(data))
	checksum8 := checksum8Of(data)
	hdr := Header{FileSize: fileSize, ChunkSize: uint16(p.ChunkSize), Nsym: byte(p.Nsym), Checksum8: checksum8}
	numChunks := hdr.NumChunks()
	if numChunks > maxChunkIdx {
		return nil, fmt.Errorf("%w: %d chunks exceeds 24-bit chunk_idx range", ErrInvalidParameters, numChunks)
	}

	var out []Oligo

	headerDNA, err := goldman.BytesToDNA(buildHeader(hdr), 'A')
	if err != nil {
		return nil, fmt.Errorf("dnastore: header goldman-encode: %w", err)
	}
	headerPrefix, err := prefix.Create(0, numChunks, prefix.Header, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("dnastore: header prefix: %w", err)
	}
	headerOligo := Oligo(headerPrefix + headerDNA)
	for i := 0; i < 2*p.Redundancy; i++ {
		out = append(out, headerOligo)
	}
	logger.Info("headerEncoded", "fileSize", fileSize, "numChunks", numChunks)

	rsCodec := rs.New(p.Nsym)

	for chunkIdx := uint32(1); chunkIdx <= numChunks; chunkIdx++ {
		start := int(chunkIdx-1) * p.ChunkSize
		end := start + p.ChunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[start:end]

		payload := make([]byte, len(chunk)+4)
		copy(payload, chunk)
		binary.LittleEndian.PutUint32(payload[len(chunk):], crc.CRC32(chunk))

		codeword, err := rsCodec.Encode(payload)
		if err != nil {
			return nil, fmt.Errorf("dnastore: chunk %d rs encode: %w", chunkIdx, err)
		}
		dataRS := codeword[:len(payload)]
		parityRS := codeword[len(payload):]

		dataDNA, err := encodeWithConstraints(dataRS, p, logger)
		if err != nil {
			return nil, fmt.Errorf("dnastore: chunk %d data goldman-encode: %w", chunkIdx, err)
		}
		parityDNA, err := encodeWithConstraints(parityRS, p, logger)
		if err != nil {
			return nil, fmt.Errorf("dnastore: chunk %d parity goldman-encode: %w", chunkIdx, err)
		}

		dataSegments := segment(dataDNA, p.SegmentNT)
		paritySegments := segment(parityDNA, p.SegmentNT)
		totalSeqs := len(dataSegments) + len(paritySegments)
		if totalSeqs >= 256 {
			return nil, fmt.Errorf("%w: chunk %d produced %d segments", ErrTooManySegments, chunkIdx, totalSeqs)
		}

		emit := func(seqType SeqType, seqIdx int, seg string) error {
			pfx, err := prefix.Create(chunkIdx, numChunks, seqType, uint16(seqIdx), uint16(totalSeqs))
			if err != nil {
				return err
			}
			oligo := Oligo(pfx + seg)
			for i := 0; i < p.Redundancy; i++ {
				out = append(out, oligo)
			}
			return nil
		}

		for i, seg := range dataSegments {
			if err := emit(prefix.Data, i, seg); err != nil {
				return nil, fmt.Errorf("dnastore: chunk %d data segment %d: %w", chunkIdx, i, err)
			}
		}
		for j, seg := range paritySegments {
			if err := emit(prefix.Parity, len(dataSegments)+j, seg); err != nil {
				return nil, fmt.Errorf("dnastore: chunk %d parity segment %d: %w", chunkIdx, j, err)
			}
		}

		logger.Info("chunkEncoded", "idx", chunkIdx, "segments", totalSeqs)
	}

	return out, nil
}

// encodeWithConstraints runs the re-seed search of spec.md §4.3: start='A'
// is tried first and, per SPEC_FULL.md's Open Question resolution, is
// always the value actually emitted (the decoder only ever assumes
// start='A'). Other starts are tried purely as a constraint-compliance
// diagnostic, up to p.ReseedAttempts, and only produce a warning log when
// one of them would have passed where 'A' did not.
func encodeWithConstraints(raw []byte, p Params, logger *slog.Logger) (string, error) {
	aDNA, err := goldman.BytesToDNA(raw, 'A')
	if err != nil {
		return "", err
	}
	if constraints.Passes(aDNA, constraints.Default) {
		return aDNA, nil
	}

	attempts := p.ReseedAttempts
	if attempts > len(reseedStarts) {
		attempts = len(reseedStarts)
	}
	for i := 1; i < attempts; i++ {
		altStart := reseedStarts[i]
		dna, err := goldman.BytesToDNA(raw, altStart)
		if err != nil {
			continue
		}
		if constraints.Passes(dna, constraints.Default) {
			logger.Warn("reseedUndecodable", "start", string(altStart), "bytes", len(raw))
			break
		}
	}
	return aDNA, nil
}

// segment splits dna into chunks of at most n bases, the last possibly
// shorter; an empty string yields no segments.
func segment(dna string, n int) []string {
	if dna == "" {
		return nil
	}
	var out []string
	for i := 0; i < len(dna); i += n {
		end := i + n
		if end > len(dna) {
			end = len(dna)
		}
		out = append(out, dna[i:end])
	}
	return out
}

const maxChunkIdx = 1<<24 - 1
