package extsort

import (
	"fmt"
	"io"
)

// generateRuns drains iter into at most cfg.BufferPages*T-record chunks,
// sorts each chunk with the in-memory adapter (C2), and appends one
// page-framed run per chunk to scratch starting at file offset 0 (C3). Each
// page reserves its HeaderSize-byte header before records are packed into
// it, so every produced page's header is written once and never overwrites
// record bytes.
//
// It returns the number of runs produced and the file offset immediately
// past the last byte written.
func generateRuns(iter Iterator, scratch io.WriterAt, cfg Config, buf []byte, cmp Comparator, m *Metrics) (numRuns int, lastWriteEnd int64, err error) {
	tuplesPerPage := cfg.TuplesPerPage()
	capacity := cfg.BufferPages * tuplesPerPage
	writeCursor := int64(0)

	offsetOf := func(i int) int {
		page := i / tuplesPerPage
		rec := i % tuplesPerPage
		return page*cfg.PageSize + cfg.HeaderSize + rec*cfg.RecordSize
	}

	for {
		n := fillChunk(iter, buf, cfg, tuplesPerPage, capacity)
		if n == 0 {
			break
		}

		pages := pagesNeeded(n, tuplesPerPage)
		// The reference implementation counts every page of input consumed
		// from the iterator as a read, even though the iterator need not be
		// file-backed; this keeps the read counter meaningful as a measure
		// of input volume rather than only of scratch-file I/O.
		m.PageReads += int64(pages)

		sortInPlace(buf, n, cfg.RecordSize, offsetOf, cmp, m)

		for p := 0; p < pages; p++ {
			count := tuplesPerPage
			if p == pages-1 {
				count = n - tuplesPerPage*p
			}
			pageStart := p * cfg.PageSize
			WritePageHeader(buf[pageStart:pageStart+cfg.HeaderSize], uint32(p), uint16(count))
		}

		written := pages * cfg.PageSize
		n2, werr := scratch.WriteAt(buf[:written], writeCursor)
		if n2 < written {
			return numRuns, writeCursor, fmt.Errorf("%w: at offset %d: %v", ErrWriteFailed, writeCursor, werr)
		}
		m.PageWrites += int64(pages)
		writeCursor += int64(written)
		numRuns++
	}

	return numRuns, writeCursor, nil
}

// fillChunk pulls up to capacity records from iter into buf, packing them
// densely within each page's post-header region, and returns how many
// records were actually filled.
func fillChunk(iter Iterator, buf []byte, cfg Config, tuplesPerPage, capacity int) int {
	n := 0
	for n < capacity {
		page := n / tuplesPerPage
		rec := n % tuplesPerPage
		off := page*cfg.PageSize + cfg.HeaderSize + rec*cfg.RecordSize
		if !iter.Next(buf[off : off+cfg.RecordSize]) {
			break
		}
		n++
	}
	return n
}

func pagesNeeded(n, tuplesPerPage int) int {
	if n == 0 {
		return 0
	}
	return (n + tuplesPerPage - 1) / tuplesPerPage
}
