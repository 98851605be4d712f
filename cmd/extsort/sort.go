package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blocksort/extsort"
	"github.com/blocksort/extsort/internal/sortcfg"
	"github.com/blocksort/extsort/internal/storage"
)

// fileRecordIterator pulls fixed-size records sequentially from a buffered
// file reader, counting how many it has produced so callers can walk the
// final sorted run afterward without re-deriving the record count.
type fileRecordIterator struct {
	r          *bufio.Reader
	recordSize int
	count      int
}

func (it *fileRecordIterator) Next(dest []byte) bool {
	if _, err := io.ReadFull(it.r, dest[:it.recordSize]); err != nil {
		return false
	}
	it.count++
	return true
}

// keyCompare orders records by their leading 4-byte big-endian key. It's the
// default comparator for the CLI surface, where records don't carry their
// own comparator.
func keyCompare(a, b []byte) int {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func runSort(args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)

	in := fs.String("in", "", "path to a file of fixed-size records to sort")
	out := fs.String("out", "", "path to write the final sorted records (plain, unframed); omit to leave them in --scratch")
	scratchPath := fs.String("scratch", "", "path to the scratch file used for runs and merge passes")
	recordSize := fs.Int("record-size", 16, "record size in bytes")
	pageSize := fs.Int("page-size", sortcfg.DefaultPageSize, "page size in bytes")
	bufferPages := fs.Int("buffer-pages", sortcfg.DefaultBufferPages, "working buffer size in pages")
	verbose := fs.Bool("verbose", false, "print progress to stderr")

	_ = fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: --in is required")
		fs.PrintDefaults()
		os.Exit(1)
	}
	if *scratchPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --scratch is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	inFile, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer inFile.Close()

	stat, err := inFile.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scratchFile, err := os.OpenFile(*scratchPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer scratchFile.Close()

	if err := storage.Prepare(scratchFile, stat.Size()*2); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cleanupFuncs = append(cleanupFuncs, func() { storage.Release(scratchFile) })
	defer storage.Release(scratchFile)

	layout, err := sortcfg.Load(*scratchPath, *recordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "page-size":
			layout.PageSize = *pageSize
		case "buffer-pages":
			layout.BufferPages = *bufferPages
		}
	})
	layout.Verbose = *verbose
	if err := layout.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := layout.EngineConfig()
	buf := make([]byte, cfg.BufferPages*cfg.PageSize)
	m := &extsort.Metrics{}
	iter := &fileRecordIterator{r: bufio.NewReaderSize(inFile, 1<<20), recordSize: *recordSize}

	if *verbose {
		fmt.Printf("Sorting %s (%d bytes) into %s\n", *in, stat.Size(), *scratchPath)
		fmt.Printf("Layout: page=%d record=%d header=%d buffer_pages=%d tuples_per_page=%d\n",
			cfg.PageSize, cfg.RecordSize, cfg.HeaderSize, cfg.BufferPages, cfg.TuplesPerPage())
		cfg.LogPass = func(passNumber, sublists int, firstOffset, lastOffset, nextFirstOffset int64) {
			fmt.Fprintf(os.Stderr, "Starting new merge pass: %d. Sublists: %d First offset: %d Last offset: %d Next first offset: %d\n",
				passNumber, sublists, firstOffset, lastOffset, nextFirstOffset)
		}
	}

	start := time.Now()
	offset, err := extsort.Sort(iter, scratchFile, buf, cfg, extsort.CompareFunc(keyCompare), m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (code %d)\n", err, extsort.Code(err))
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Sorted %d records in %v\n", iter.count, elapsed)
		fmt.Printf("Final run offset: %d, reads=%d writes=%d comparisons=%d copies=%d\n",
			offset, m.PageReads, m.PageWrites, m.Comparisons, m.RecordCopies)
	}

	if *out != "" {
		if err := extractSortedRun(scratchFile, cfg, offset, iter.count, *out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("Wrote %d records to %s\n", iter.count, *out)
		}
	}
}

// extractSortedRun walks the page chain of a finished sorted run and writes
// the raw record bytes, stripped of page framing, to outPath.
func extractSortedRun(scratch io.ReaderAt, cfg extsort.Config, offset int64, n int, outPath string) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	w := bufio.NewWriterSize(outFile, 1<<20)
	page := make([]byte, cfg.PageSize)
	pos := offset
	written := 0

	for written < n {
		if _, err := scratch.ReadAt(page, pos); err != nil {
			return fmt.Errorf("read page at %d: %w", pos, err)
		}
		count := int(extsort.ReadRecordCount(page[:cfg.HeaderSize]))
		for r := 0; r < count; r++ {
			start := cfg.HeaderSize + r*cfg.RecordSize
			if _, err := w.Write(page[start : start+cfg.RecordSize]); err != nil {
				return err
			}
		}
		written += count
		pos += int64(cfg.PageSize)
	}

	return w.Flush()
}
