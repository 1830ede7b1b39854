package constraints

import "testing"

func TestGCContent(t *testing.T) {
	cases := []struct {
		seq  string
		want float64
	}{
		{"", 0},
		{"GC", 1},
		{"AT", 0},
		{"ACGT", 0.5},
	}
	for _, c := range cases {
		if got := GCContent(c.seq); got != c.want {
			t.Errorf("GCContent(%q) = %v, want %v", c.seq, got, c.want)
		}
	}
}

func TestMaxRunLength(t *testing.T) {
	cases := []struct {
		seq  string
		want int
	}{
		{"", 0},
		{"A", 1},
		{"AAAA", 4},
		{"AACCGT", 2},
		{"ACGT", 1},
	}
	for _, c := range cases {
		if got := MaxRunLength(c.seq); got != c.want {
			t.Errorf("MaxRunLength(%q) = %d, want %d", c.seq, got, c.want)
		}
	}
}

func TestPasses(t *testing.T) {
	cases := []struct {
		name string
		seq  string
		want bool
	}{
		{"empty rejected", "", false},
		{"balanced GC passes", "ACGTACGTACGT", true},
		{"all-A run too long", "AAAA", false},
		{"low GC rejected", "ATATATATAT", false},
		{"high GC rejected", "GCGCGCGCGC", false},
		{"boundary gc 0.4 passes", "AATTAACCGG", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Passes(c.seq, Default); got != c.want {
				t.Errorf("Passes(%q) = %v, want %v (gc=%v run=%d)", c.seq, got, c.want, GCContent(c.seq), MaxRunLength(c.seq))
			}
		})
	}
}
