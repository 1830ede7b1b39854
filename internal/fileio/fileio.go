// Package fileio provides the one OS-facing hint EncodeFile needs: telling
// the kernel the input file will be read sequentially and once, the way the
// teacher repo reaches for a raw syscall behind a unix build tag rather
// than a cross-platform abstraction it doesn't need.
package fileio

import "os"

// HintSequential advises the OS that f will be read sequentially start to
// finish, matching encode_file's single full-file read (spec.md §5). It is
// best-effort: a failure is never fatal, only logged by the caller if it
// chooses to.
func HintSequential(f *os.File) error {
	return hintSequential(f)
}
