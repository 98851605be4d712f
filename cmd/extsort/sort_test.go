package main

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/blocksort/extsort"
)

func TestEndToEndSort(t *testing.T) {
	dir := t.TempDir()
	recordSize := 16
	n := 500

	inPath := filepath.Join(dir, "in.bin")
	inFile, err := os.Create(inPath)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	w := bufio.NewWriter(inFile)
	record := make([]byte, recordSize)
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint32(record[0:4], uint32(n-i))
		if _, err := w.Write(record); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	inFile.Close()

	scratchPath := filepath.Join(dir, "scratch.bin")
	scratchFile, err := os.OpenFile(scratchPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		t.Fatalf("create scratch: %v", err)
	}
	defer scratchFile.Close()

	readBack, err := os.Open(inPath)
	if err != nil {
		t.Fatalf("reopen input: %v", err)
	}
	defer readBack.Close()

	cfg := extsort.NewConfig(256, recordSize, 4)
	buf := make([]byte, cfg.BufferPages*cfg.PageSize)
	m := &extsort.Metrics{}
	iter := &fileRecordIterator{r: bufio.NewReader(readBack), recordSize: recordSize}

	offset, err := extsort.Sort(iter, scratchFile, buf, cfg, extsort.CompareFunc(keyCompare), m)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if iter.count != n {
		t.Fatalf("expected %d records consumed, got %d", n, iter.count)
	}

	outPath := filepath.Join(dir, "out.bin")
	if err := extractSortedRun(scratchFile, cfg, offset, n, outPath); err != nil {
		t.Fatalf("extractSortedRun: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != n*recordSize {
		t.Fatalf("expected %d bytes, got %d", n*recordSize, len(data))
	}

	var prev uint32
	for i := 0; i < n; i++ {
		key := binary.BigEndian.Uint32(data[i*recordSize:])
		if i > 0 && key < prev {
			t.Fatalf("output not sorted at record %d: %d < %d", i, key, prev)
		}
		prev = key
	}
}
