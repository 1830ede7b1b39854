package dnastore

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/Hacktomm/dnastore/internal/crc"
)

// headerLen is the fixed 22-byte size of the file header (spec.md §3).
const headerLen = 22

// Header is the parsed content of the file's one dedicated header oligo.
type Header struct {
	FileSize  uint64
	ChunkSize uint16
	Nsym      byte
	Checksum8 [8]byte
}

// NumChunks is ceil(FileSize / ChunkSize), spec.md §3.
func (h Header) NumChunks() uint32 {
	if h.FileSize == 0 {
		return 0
	}
	return uint32((h.FileSize + uint64(h.ChunkSize) - 1) / uint64(h.ChunkSize))
}

func checksum8Of(data []byte) [8]byte {
	sum := sha256.Sum256(data)
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// buildHeader serialises h's 22-byte wire form: file_size (LE64),
// chunk_size (LE16), nsym, a zero reserved byte, checksum8, and a
// CRC-16-CCITT over bytes 0..19.
func buildHeader(h Header) []byte {
	buf := make([]byte, headerLen)
	binary.LittleEndian.PutUint64(buf[0:8], h.FileSize)
	binary.LittleEndian.PutUint16(buf[8:10], h.ChunkSize)
	buf[10] = h.Nsym
	buf[11] = 0 // reserved
	copy(buf[12:20], h.Checksum8[:])
	crc16 := crc.CRC16CCITT(buf[0:20])
	binary.LittleEndian.PutUint16(buf[20:22], crc16)
	return buf
}

// parseHeader validates and decodes a 22-byte header. It fails (wrapping
// ErrHeaderUnrecoverable) on input shorter than 22 bytes (longer input is
// truncated to its first 22 bytes), a CRC-16 mismatch, a nonzero reserved
// byte, or chunk_size+4+nsym > 255.
func parseHeader(data []byte) (Header, error) {
	if len(data) < headerLen {
		return Header{}, fmt.Errorf("%w: header is %d bytes, want %d", ErrHeaderUnrecoverable, len(data), headerLen)
	}
	data = data[:headerLen]

	wantCRC := binary.LittleEndian.Uint16(data[20:22])
	gotCRC := crc.CRC16CCITT(data[0:20])
	if gotCRC != wantCRC {
		return Header{}, fmt.Errorf("%w: header CRC-16 mismatch (got %#04x, want %#04x)", ErrHeaderUnrecoverable, gotCRC, wantCRC)
	}

	if data[11] != 0 {
		return Header{}, fmt.Errorf("%w: reserved byte is %d, want 0", ErrHeaderUnrecoverable, data[11])
	}

	h := Header{
		FileSize:  binary.LittleEndian.Uint64(data[0:8]),
		ChunkSize: binary.LittleEndian.Uint16(data[8:10]),
		Nsym:      data[10],
	}
	copy(h.Checksum8[:], data[12:20])

	if int(h.ChunkSize)+4+int(h.Nsym) > 255 {
		return Header{}, fmt.Errorf("%w: chunk_size(%d)+4+nsym(%d) exceeds 255", ErrHeaderUnrecoverable, h.ChunkSize, h.Nsym)
	}
	return h, nil
}
