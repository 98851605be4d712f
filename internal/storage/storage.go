// Package storage provides scratch-file setup shared by the engine's
// command-line surface: advisory locking so two sort runs never share a
// scratch file, and best-effort preallocation so the pass controller's
// in-place page reuse doesn't fragment the file as it grows.
package storage

import "os"

// Prepare locks f for exclusive use and preallocates size bytes. On
// platforms without native preallocation support it falls back to a no-op;
// callers still get correctness, just without the fragmentation guarantee.
func Prepare(f *os.File, size int64) error {
	if err := lockExclusive(f); err != nil {
		return err
	}
	return preallocate(f, size)
}

// Release drops the advisory lock taken by Prepare. Callers should call it
// when done with the scratch file, typically via defer.
func Release(f *os.File) error {
	return unlock(f)
}
