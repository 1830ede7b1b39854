package rs

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeCleanRoundTrip(t *testing.T) {
	c := New(10)
	msg := []byte("the quick brown fox jumps over the lazy dog")
	codeword, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(codeword[:len(msg)], msg) {
		t.Fatalf("systematic prefix mismatch: got %q want %q", codeword[:len(msg)], msg)
	}
	got, corrected, err := c.Decode(codeword)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if corrected != 0 {
		t.Errorf("corrected = %d, want 0 for clean codeword", corrected)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode = %q, want %q", got, msg)
	}
}

func TestDecodeCorrectsUpToCapacity(t *testing.T) {
	nsym := 10
	cap := nsym / 2
	c := New(nsym)
	msg := []byte("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	codeword, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for _, nerr := range []int{1, 2, cap} {
		t.Run("", func(t *testing.T) {
			corruptedWord := append([]byte(nil), codeword...)
			positions := make([]int, 0, nerr)
			for i := 0; i < nerr; i++ {
				pos := i * 3
				corruptedWord[pos] ^= 0xFF
				positions = append(positions, pos)
			}
			got, corrected, err := c.Decode(corruptedWord)
			if err != nil {
				t.Fatalf("Decode with %d errors at %v: %v", nerr, positions, err)
			}
			if corrected != nerr {
				t.Errorf("corrected = %d, want %d", corrected, nerr)
			}
			if !bytes.Equal(got, msg) {
				t.Errorf("Decode with %d errors = %q, want %q", nerr, got, msg)
			}
		})
	}
}

func TestDecodeFailsBeyondCapacity(t *testing.T) {
	nsym := 10
	c := New(nsym)
	msg := bytes.Repeat([]byte{0x5A}, 50)
	codeword, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Flipping more than nsym/2 bytes is expected to either fail to decode
	// or (rarely, for an adversarially-chosen pattern) converge on a wrong
	// but internally consistent codeword; either way it must not silently
	// return the original message by luck in this deterministic case.
	for i := 0; i < nsym; i++ {
		codeword[i*2] ^= 0xFF
	}
	_, _, err = c.Decode(codeword)
	if err == nil {
		t.Fatalf("Decode with %d errors (capacity %d): expected failure, got success", nsym, nsym/2)
	}
	if !errors.Is(err, ErrRSDecodeFailure) {
		t.Errorf("error = %v, want ErrRSDecodeFailure", err)
	}
}

func TestEncodeRejectsOversizeMessage(t *testing.T) {
	c := New(10)
	_, err := c.Encode(make([]byte, 250))
	if !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
}

func TestDecodeRejectsShortCodeword(t *testing.T) {
	c := New(10)
	_, _, err := c.Decode(make([]byte, 5))
	if err == nil {
		t.Fatal("expected error for codeword shorter than nsym")
	}
}
