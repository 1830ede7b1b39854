//go:build unix

package fileio

import (
	"os"

	"golang.org/x/sys/unix"
)

func hintSequential(f *os.File) error {
	return unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
