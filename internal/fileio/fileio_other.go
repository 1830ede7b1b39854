//go:build !unix

package fileio

import "os"

func hintSequential(f *os.File) error {
	return nil
}
