//go:build windows

package storage

import "os"

// Windows has no direct equivalent of flock/fallocate wired up here; callers
// still get correctness, just without the advisory lock and without
// preallocation.
func lockExclusive(f *os.File) error { return nil }

func unlock(f *os.File) error { return nil }

func preallocate(f *os.File, size int64) error { return nil }
