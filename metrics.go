package extsort

import (
	"errors"
	"fmt"
	"io"
)

// Metrics accumulates I/O and work counters for a single Sort call (C6). The
// caller owns its lifetime and zero value; the engine only ever increments
// it, never gates behavior on it.
type Metrics struct {
	PageReads    int64
	PageWrites   int64
	Comparisons  int64
	RecordCopies int64
}

// Sentinel errors mirroring the numeric codes of the original implementation.
// Wrapped context is appended with fmt.Errorf's %w so errors.Is still
// matches these.
var (
	ErrAlloc       = errors.New("extsort: allocation failure")
	ErrWriteFailed = errors.New("extsort: page write failed")
	ErrReadFailed  = errors.New("extsort: page read failed")
)

// Code maps an error returned by Sort back to the original numeric error
// codes (8/9/10), for callers that still want to report them that way.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrAlloc):
		return 8
	case errors.Is(err, ErrWriteFailed):
		return 9
	case errors.Is(err, ErrReadFailed):
		return 10
	default:
		return -1
	}
}

func wrapAlloc(context string) error {
	return fmt.Errorf("%w: %s", ErrAlloc, context)
}

// readPage reads exactly len(dst) bytes at offset, counting the read in m
// only when the full page was read.
func readPage(r io.ReaderAt, dst []byte, offset int64, m *Metrics) error {
	n, err := r.ReadAt(dst, offset)
	if n < len(dst) {
		return fmt.Errorf("%w: at offset %d: %v", ErrReadFailed, offset, err)
	}
	m.PageReads++
	return nil
}

// writePage writes exactly len(src) bytes at offset.
func writePage(w io.WriterAt, src []byte, offset int64, m *Metrics) error {
	n, err := w.WriteAt(src, offset)
	if n < len(src) {
		return fmt.Errorf("%w: at offset %d: %v", ErrWriteFailed, offset, err)
	}
	m.PageWrites++
	return nil
}
