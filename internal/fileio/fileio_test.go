package fileio

import (
	"os"
	"testing"
)

func TestHintSequentialOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "dnastore-fileio-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if err := HintSequential(f); err != nil {
		t.Errorf("HintSequential: %v", err)
	}
}
