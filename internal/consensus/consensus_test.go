package consensus

import "testing"

func TestVoteEmpty(t *testing.T) {
	if got := Vote(nil); got != "" {
		t.Errorf("Vote(nil) = %q, want empty", got)
	}
}

func TestVoteSingleRead(t *testing.T) {
	if got := Vote([]string{"ACGT"}); got != "ACGT" {
		t.Errorf("Vote single = %q, want ACGT", got)
	}
}

func TestVoteMajority(t *testing.T) {
	cases := []struct {
		name  string
		reads []string
		want  string
	}{
		{"unanimous", []string{"AAA", "AAA", "AAA"}, "AAA"},
		{"one outlier corrected", []string{"ACGT", "ACGT", "TCGT"}, "ACGT"},
		{"tie breaks first-seen", []string{"A", "C"}, "A"},
		{"tie breaks first-seen reversed order", []string{"C", "A"}, "C"},
		{"variable length, longer contributes tail", []string{"AC", "ACGT", "ACGT"}, "ACGT"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Vote(c.reads); got != c.want {
				t.Errorf("Vote(%v) = %q, want %q", c.reads, got, c.want)
			}
		})
	}
}

func TestGroupWeightsEveryReplicateEqually(t *testing.T) {
	g := NewGroup()
	g.Add("ACGT")
	g.Add("ACGT")
	g.Add("TCGT")
	if got := g.Consensus(); got != "ACGT" {
		t.Errorf("Consensus = %q, want ACGT (2 identical replicates should outvote 1 corrupted)", got)
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
	if g.DistinctCount() != 2 {
		t.Errorf("DistinctCount = %d, want 2", g.DistinctCount())
	}
}

func TestGroupDedupeDoesNotFlipTies(t *testing.T) {
	// Two distinct reads where the weighted read appears twice must still
	// win even though it was added after the singleton, proving Consensus
	// votes over every replicate rather than over deduplicated values.
	g := NewGroup()
	g.Add("T")
	g.Add("A")
	g.Add("A")
	if got := g.Consensus(); got != "A" {
		t.Errorf("Consensus = %q, want A (2 replicates of A beat 1 of T)", got)
	}
}
