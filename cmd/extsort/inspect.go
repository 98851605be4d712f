package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blocksort/extsort"
	"github.com/blocksort/extsort/internal/sortcfg"
)

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	scratchPath := fs.String("scratch", "", "path to the scratch file to inspect")
	offset := fs.Int64("offset", 0, "byte offset of the first page to dump")
	pages := fs.Int("pages", 1, "number of consecutive pages to dump")
	pageSize := fs.Int("page-size", sortcfg.DefaultPageSize, "page size in bytes")
	headerSize := fs.Int("header-size", extsort.DefaultHeaderSize, "page header size in bytes")

	_ = fs.Parse(args)

	if *scratchPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --scratch is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*scratchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	page := make([]byte, *pageSize)
	pos := *offset
	for i := 0; i < *pages; i++ {
		n, err := f.ReadAt(page, pos)
		if n < len(page) {
			fmt.Fprintf(os.Stderr, "stopped at page %d: %v\n", i, err)
			break
		}
		blockIndex := extsort.ReadBlockIndex(page[:*headerSize])
		recordCount := extsort.ReadRecordCount(page[:*headerSize])
		fmt.Printf("page %d (offset %d): block_index=%d record_count=%d\n", i, pos, blockIndex, recordCount)
		pos += int64(*pageSize)
	}
}
