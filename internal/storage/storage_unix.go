//go:build unix

package storage

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func lockExclusive(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("storage: lock %s: %w", f.Name(), err)
	}
	return nil
}

func unlock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("storage: unlock %s: %w", f.Name(), err)
	}
	return nil
}

func preallocate(f *os.File, size int64) error {
	if size <= 0 {
		return nil
	}
	if err := unix.Fallocate(int(f.Fd()), 0, 0, size); err != nil {
		// Fallocate isn't supported on every filesystem (e.g. tmpfs on some
		// kernels); preallocation is an optimization, not a correctness
		// requirement, so fall back to leaving the file sparse.
		return nil
	}
	return nil
}
