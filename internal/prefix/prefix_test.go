package prefix

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateParseRoundTrip(t *testing.T) {
	cases := []struct {
		name                                       string
		chunkIdx, totalChunks                      uint32
		seqType                                    SeqType
		seqIdx, totalSeqs                          uint16
	}{
		{"header", 0, 3, Header, 0, 1},
		{"data first chunk", 1, 3, Data, 0, 5},
		{"parity last chunk", 3, 3, Parity, 4, 6},
		{"max fields", 1<<24 - 1, 1<<24 - 1, Data, 1<<10 - 1, 1<<10 - 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Create(c.chunkIdx, c.totalChunks, c.seqType, c.seqIdx, c.totalSeqs)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if len(p) != 80 {
				t.Fatalf("prefix length = %d, want 80", len(p))
			}
			if !strings.HasPrefix(p, "AG") {
				t.Fatalf("prefix %q missing SYNC", p)
			}
			info, ok := Parse(p)
			if !ok {
				t.Fatalf("Parse(%q) failed", p)
			}
			if info.SeqType != c.seqType || info.ChunkIdx != c.chunkIdx ||
				info.TotalChunks != c.totalChunks || info.SeqIdx != c.seqIdx ||
				info.TotalSeqs != c.totalSeqs {
				t.Errorf("Parse(Create(t)) = %+v, want fields %+v", info, c)
			}
			if info.Payload != "" {
				t.Errorf("Payload = %q, want empty for a bare prefix", info.Payload)
			}
		})
	}
}

func TestCreateWithPayload(t *testing.T) {
	p, err := Create(1, 1, Data, 0, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	oligo := p + "ACGTACGT"
	info, ok := Parse(oligo)
	if !ok {
		t.Fatal("Parse failed")
	}
	if info.Payload != "ACGTACGT" {
		t.Errorf("Payload = %q, want ACGTACGT", info.Payload)
	}
}

func TestFieldOutOfRange(t *testing.T) {
	cases := []struct {
		name                             string
		chunkIdx, totalChunks            uint32
		seqIdx, totalSeqs                uint16
	}{
		{"chunk_idx overflow", 1 << 24, 1, 0, 1},
		{"total_chunks overflow", 1, 1 << 24, 0, 1},
		{"seq_idx overflow", 1, 1, 1 << 10, 1},
		{"total_seqs overflow", 1, 1, 0, 1 << 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Create(c.chunkIdx, c.totalChunks, Data, c.seqIdx, c.totalSeqs)
			if !errors.Is(err, ErrFieldOutOfRange) {
				t.Fatalf("expected ErrFieldOutOfRange, got %v", err)
			}
		})
	}
}

func TestParseRejectsShortInput(t *testing.T) {
	if _, ok := Parse("AGAA"); ok {
		t.Fatal("expected Parse to reject short input")
	}
}

func TestParseRejectsBadSync(t *testing.T) {
	p, _ := Create(1, 1, Data, 0, 1)
	bad := "TT" + p[2:]
	if _, ok := Parse(bad); ok {
		t.Fatal("expected Parse to reject bad SYNC")
	}
}

func TestParseRejectsBadType(t *testing.T) {
	p, _ := Create(1, 1, Data, 0, 1)
	bad := p[:2] + "TT" + p[4:]
	if _, ok := Parse(bad); ok {
		t.Fatal("expected Parse to reject unknown TYPE code")
	}
}

func TestParseRejectsCRCMismatch(t *testing.T) {
	p, _ := Create(1, 1, Data, 0, 1)
	corrupted := []byte(p)
	// Flip one CT-coded field bit without touching SYNC/TYPE.
	if corrupted[10] == 'C' {
		corrupted[10] = 'T'
	} else {
		corrupted[10] = 'C'
	}
	if _, ok := Parse(string(corrupted)); ok {
		t.Fatal("expected Parse to reject CRC-8 mismatch after field corruption")
	}
}

// TestParseRejectsAllZeroFieldBlock covers the scenario 3 corruption shape
// from spec.md §8: an all-T field block under the header TYPE is rejected
// rather than silently accepted. The CRC-8 of the all-zero field bytes is
// itself zero, so the all-T CRC field matches; the rejection comes from the
// header fields (total_seqs is 0, not 1).
func TestParseRejectsAllZeroFieldBlock(t *testing.T) {
	bad := "AG" + "AA" + strings.Repeat("T", 76)
	if _, ok := Parse(bad); ok {
		t.Fatal("expected Parse to reject all-zero field block under header TYPE")
	}
}
