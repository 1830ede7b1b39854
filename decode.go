package dnastore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Hacktomm/dnastore/internal/consensus"
	"github.com/Hacktomm/dnastore/internal/crc"
	"github.com/Hacktomm/dnastore/internal/goldman"
	"github.com/Hacktomm/dnastore/internal/prefix"
	"github.com/Hacktomm/dnastore/internal/rs"
)

// DecodeSequences implements the three-stage decoder pipeline of spec.md
// §4.8 against an unordered multiset of candidate oligos: parse+validate
// prefixes, reconstruct the file header by consensus, then reconstruct and
// verify each chunk. It never panics — an internal invariant violation
// during reconstruction is recovered into (false, nil), mirroring
// hfs.New's recover() boundary — and any recoverable per-read or per-chunk
// problem downgrades to dropping that record, per spec.md §7's propagation
// policy. Only the final SHA-256 gate is authoritative.
func DecodeSequences(reads []string, p Params) (ok bool, data []byte) {
	logger := p.logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("decodePanicRecovered", "panic", fmt.Sprintf("%v", r))
			ok, data = false, nil
		}
	}()

	headerGroup, dataByChunk, parityByChunk := partitionReads(reads)

	hdr, err := reconstructHeader(headerGroup)
	if err != nil {
		logger.Error("headerUnrecoverable", "err", err)
		return false, nil
	}
	logger.Info("headerRecovered", "fileSize", hdr.FileSize, "chunkSize", hdr.ChunkSize, "nsym", hdr.Nsym)

	numChunks := hdr.NumChunks()
	rsCodec := rs.New(int(hdr.Nsym))

	buf := make([]byte, 0, hdr.FileSize)
	for chunkIdx := uint32(1); chunkIdx <= numChunks; chunkIdx++ {
		chunkBytes, ok := reconstructChunk(chunkIdx, dataByChunk[chunkIdx], parityByChunk[chunkIdx], rsCodec, logger)
		if !ok {
			logger.Warn("chunkDropped", "idx", chunkIdx)
			continue
		}
		buf = append(buf, chunkBytes...)
	}

	if uint64(len(buf)) < hdr.FileSize {
		logger.Warn("reconstructionIncomplete", "got", len(buf), "want", hdr.FileSize)
		return false, nil
	}
	buf = buf[:hdr.FileSize]

	if checksum8Of(buf) != hdr.Checksum8 {
		logger.Warn("checksumMismatch")
		return false, nil
	}
	return true, buf
}

// partitionReads runs stage A: parse_prefix every read, silently dropping
// failures, then buckets survivors by seq_type and (for D/P) by chunk_idx.
// Every bucket is a consensus.Group so ReadStats can later report how many
// of the grouped reads were byte-identical, not just how many there were.
func partitionReads(reads []string) (headerGroup *consensus.Group, dataByChunk, parityByChunk map[uint32]map[uint16]*consensus.Group) {
	headerGroup = consensus.NewGroup()
	dataByChunk = make(map[uint32]map[uint16]*consensus.Group)
	parityByChunk = make(map[uint32]map[uint16]*consensus.Group)

	groupFor := func(m map[uint32]map[uint16]*consensus.Group, chunkIdx uint32, seqIdx uint16) *consensus.Group {
		byIdx, ok := m[chunkIdx]
		if !ok {
			byIdx = make(map[uint16]*consensus.Group)
			m[chunkIdx] = byIdx
		}
		g, ok := byIdx[seqIdx]
		if !ok {
			g = consensus.NewGroup()
			byIdx[seqIdx] = g
		}
		return g
	}

	for _, r := range reads {
		info, ok := prefix.Parse(r)
		if !ok {
			continue
		}
		switch info.SeqType {
		case prefix.Header:
			if info.ChunkIdx == 0 {
				headerGroup.Add(info.Payload)
			}
		case prefix.Data:
			groupFor(dataByChunk, info.ChunkIdx, info.SeqIdx).Add(info.Payload)
		case prefix.Parity:
			groupFor(parityByChunk, info.ChunkIdx, info.SeqIdx).Add(info.Payload)
		}
	}
	return headerGroup, dataByChunk, parityByChunk
}

// reconstructHeader runs stage B: vote across every header payload,
// Goldman-decode, and validate the 22-byte wire header.
func reconstructHeader(headerGroup *consensus.Group) (Header, error) {
	if headerGroup.Len() == 0 {
		return Header{}, fmt.Errorf("%w: no header oligo survived prefix validation", ErrHeaderUnrecoverable)
	}
	headerDNA := headerGroup.Consensus()

	headerBytes, err := goldman.DNAToBytes(headerDNA, 'A', headerLen)
	if err != nil {
		return Header{}, fmt.Errorf("%w: goldman-decode: %v", ErrHeaderUnrecoverable, err)
	}
	return parseHeader(headerBytes)
}

// ReadStats partitions reads the same way DecodeSequences does and reports
// how many survived prefix validation in total, and how many of those were
// content-distinct (by xxhash fingerprint, per internal/consensus.Group).
// This is the batch-decode duplicate-vs-distinct summary the CLI's dump
// subcommand prints.
func ReadStats(reads []string) (total, distinct int) {
	headerGroup, dataByChunk, parityByChunk := partitionReads(reads)

	add := func(g *consensus.Group) {
		total += g.Len()
		distinct += g.DistinctCount()
	}
	add(headerGroup)
	for _, byIdx := range dataByChunk {
		for _, g := range byIdx {
			add(g)
		}
	}
	for _, byIdx := range parityByChunk {
		for _, g := range byIdx {
			add(g)
		}
	}
	return total, distinct
}

// reconstructChunk runs stage C for one chunk_idx: consensus per seq_idx,
// concatenation in ascending order, Goldman-decode, RS-decode (falling back
// to the raw data bytes on RS failure), and the trailing CRC-32 gate.
func reconstructChunk(chunkIdx uint32, dataGroups, parityGroups map[uint16]*consensus.Group, rsCodec *rs.Codec, logger *slog.Logger) ([]byte, bool) {
	if len(dataGroups) == 0 {
		return nil, false
	}

	dataDNA := concatByAscendingSeqIdx(dataGroups)
	parityDNA := concatByAscendingSeqIdx(parityGroups)

	dataBytes, err := goldman.DNAToBytes(dataDNA, 'A', -1)
	if err != nil {
		logger.Warn("chunkGoldmanDecodeFailed", "idx", chunkIdx, "part", "data", "err", err)
		return nil, false
	}
	var parityBytes []byte
	if parityDNA != "" {
		parityBytes, err = goldman.DNAToBytes(parityDNA, 'A', -1)
		if err != nil {
			logger.Warn("chunkGoldmanDecodeFailed", "idx", chunkIdx, "part", "parity", "err", err)
			return nil, false
		}
	}

	var decoded []byte
	if len(parityBytes) > 0 {
		codeword := append(append([]byte(nil), dataBytes...), parityBytes...)
		msg, corrected, err := rsCodec.Decode(codeword)
		if err != nil {
			logger.Warn("rsDecodeFailed", "idx", chunkIdx, "err", err)
			decoded = dataBytes
		} else {
			if corrected > 0 {
				logger.Info("rsCorrected", "idx", chunkIdx, "symbols", corrected)
			}
			decoded = msg
		}
	} else {
		decoded = dataBytes
	}

	if len(decoded) < 4 {
		logger.Warn("chunkTooShortForCRC", "idx", chunkIdx, "len", len(decoded))
		return nil, false
	}
	payload, crcBytes := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	wantCRC := binary.LittleEndian.Uint32(crcBytes)
	if crc.CRC32(payload) != wantCRC {
		logger.Warn("chunkCRCMismatch", "idx", chunkIdx)
		return nil, false
	}
	return payload, true
}

func concatByAscendingSeqIdx(groups map[uint16]*consensus.Group) string {
	if len(groups) == 0 {
		return ""
	}
	idxs := make([]uint16, 0, len(groups))
	for idx := range groups {
		idxs = append(idxs, idx)
	}
	sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })

	var buf bytes.Buffer
	for _, idx := range idxs {
		buf.WriteString(groups[idx].Consensus())
	}
	return buf.String()
}
