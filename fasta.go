package dnastore

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteFASTA writes each oligo as a two-line FASTA record (">oligo_{i}",
// sequence), per spec.md §6.
func WriteFASTA(w io.Writer, oligos []Oligo) error {
	bw := bufio.NewWriter(w)
	for i, o := range oligos {
		if _, err := fmt.Fprintf(bw, ">oligo_%d\n%s\n", i, o); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePlain writes one uppercase oligo per line.
func WritePlain(w io.Writer, oligos []Oligo) error {
	bw := bufio.NewWriter(w)
	for _, o := range oligos {
		if _, err := fmt.Fprintln(bw, strings.ToUpper(string(o))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadPlain reads one oligo per line, trimming whitespace and silently
// rejecting any line containing a character outside {A,C,G,T}, per
// spec.md §6.
func LoadPlain(r io.Reader) ([]Oligo, error) {
	var out []Oligo
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.Trim(line, "ACGT") != "" {
			continue
		}
		out = append(out, Oligo(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
