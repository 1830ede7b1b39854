package dnastore

import "testing"

func TestParamsValidateDefaults(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams() should validate, got %v", err)
	}
}

func TestParamsValidateRejectsNonPositive(t *testing.T) {
	base := DefaultParams()
	cases := []struct {
		name string
		mod  func(p *Params)
	}{
		{"chunkSize", func(p *Params) { p.ChunkSize = 0 }},
		{"redundancy", func(p *Params) { p.Redundancy = -1 }},
		{"nsym", func(p *Params) { p.Nsym = 0 }},
		{"segmentNT", func(p *Params) { p.SegmentNT = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := base
			c.mod(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected Validate to reject %s", c.name)
			}
		})
	}
}

// S6: chunk_size=250, nsym=10 exceeds the 255-byte GF(256) codeword limit.
func TestParamsValidateRejectsOversizeCodeword(t *testing.T) {
	p := DefaultParams()
	p.ChunkSize = 250
	p.Nsym = 10
	if err := p.Validate(); err == nil {
		t.Fatal("expected Validate to reject chunk_size=250, nsym=10")
	}
}

func TestParamsValidateAcceptsExactLimit(t *testing.T) {
	p := DefaultParams()
	p.ChunkSize = 241
	p.Nsym = 10
	if err := p.Validate(); err != nil {
		t.Fatalf("241+4+10=255 should be accepted, got %v", err)
	}
}
