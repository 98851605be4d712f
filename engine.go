// Package extsort implements an external merge sort engine over fixed-size
// records: run generation from a pull iterator, page-framed runs on a
// scratch file, and repeated in-place multi-way merge passes that reuse the
// same scratch file for both input and output.
package extsort

import (
	"fmt"
	"io"
)

// Iterator pulls one fixed-size record at a time into dest, which is always
// exactly Config.RecordSize bytes. It returns true if dest was filled,
// false once the stream is exhausted. Re-invoking Next after a false return
// is undefined. An iterator has no way to report an error distinct from
// end-of-stream; callers that need that distinction should fold it into
// their own sentinel record or check state after Sort returns.
type Iterator interface {
	Next(dest []byte) bool
}

// Comparator defines a total order over fixed-size records. Compare must be
// a pure function of its two arguments: negative if a < b, zero if equal,
// positive if a > b.
type Comparator interface {
	Compare(a, b []byte) int
}

// CompareFunc adapts a plain function to Comparator.
type CompareFunc func(a, b []byte) int

// Compare calls f.
func (f CompareFunc) Compare(a, b []byte) int { return f(a, b) }

// Scratch is the random-access file the engine reads and writes runs to. It
// holds both the intermediate runs of every pass and, on success, the final
// sorted output, all within the same file region.
type Scratch interface {
	io.ReaderAt
	io.WriterAt
}

// Config describes the fixed-size page and buffer layout the engine
// operates over (§3). PageSize, RecordSize and HeaderSize describe on-disk
// page framing; BufferPages is the number of pages in the caller-supplied
// working buffer, which doubles as the merge fan-in bound (BufferPages-1
// runs merge per pass, with the last page reserved for output).
type Config struct {
	PageSize    int
	RecordSize  int
	HeaderSize  int
	BufferPages int

	// LogPass, if set, is called before every merge invocation (each group
	// of up to BufferPages-1 runs, so several calls can share one
	// passNumber) with the same bookkeeping the reference engine printed as
	// a progress banner. It is
	// nil by default, matching the rest of the engine's no-gating-on-
	// observability stance; callers that want the banner wire this up
	// themselves (cmd/extsort does, behind --verbose).
	LogPass func(passNumber, sublists int, firstOffset, lastOffset, nextFirstOffset int64)
}

// NewConfig builds a Config using the standard page header size.
func NewConfig(pageSize, recordSize, bufferPages int) Config {
	return Config{
		PageSize:    pageSize,
		RecordSize:  recordSize,
		HeaderSize:  DefaultHeaderSize,
		BufferPages: bufferPages,
	}
}

// TuplesPerPage returns T, the number of records that fit in one page after
// its header: floor((PageSize-HeaderSize)/RecordSize).
func (c Config) TuplesPerPage() int {
	return (c.PageSize - c.HeaderSize) / c.RecordSize
}

// Validate reports whether the configuration is usable. BufferPages must be
// at least 3: one page to hold an input run's current page, one more so a
// merge has fan-in greater than one, and one reserved for the output page.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("extsort: page size must be positive, got %d", c.PageSize)
	}
	if c.RecordSize <= 0 {
		return fmt.Errorf("extsort: record size must be positive, got %d", c.RecordSize)
	}
	if c.HeaderSize < 0 {
		return fmt.Errorf("extsort: header size must be non-negative, got %d", c.HeaderSize)
	}
	if c.TuplesPerPage() <= 0 {
		return fmt.Errorf("extsort: page of %d bytes cannot hold a %d-byte header and a %d-byte record", c.PageSize, c.HeaderSize, c.RecordSize)
	}
	if c.BufferPages < 3 {
		return fmt.Errorf("extsort: buffer pages must be >= 3, got %d", c.BufferPages)
	}
	return nil
}

// Sort drains iter into buf-sized sorted runs on scratch, then repeatedly
// merges those runs in place until a single sorted run remains (C1-C5). buf
// must be at least cfg.BufferPages*cfg.PageSize bytes and is the engine's
// entire working memory; no further allocation scales with input size. It
// returns the scratch-file offset of the final sorted run. m accumulates
// read/write/comparison/copy counters across the whole call.
func Sort(iter Iterator, scratch Scratch, buf []byte, cfg Config, cmp Comparator, m *Metrics) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	need := cfg.BufferPages * cfg.PageSize
	if len(buf) < need {
		return 0, wrapAlloc(fmt.Sprintf("working buffer too small: need %d bytes, have %d", need, len(buf)))
	}

	numRuns, lastWriteEnd, err := generateRuns(iter, scratch, cfg, buf, cmp, m)
	if err != nil {
		return 0, err
	}
	if numRuns <= 1 {
		return 0, nil
	}

	return runPasses(scratch, cfg, buf, numRuns, lastWriteEnd, cmp, m)
}
