package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGenSortInspect drives the gen, sort and inspect command handlers
// directly, in-process, the way the teacher's own pipeline test exercises
// its library entry points rather than shelling out to a built binary.
func TestGenSortInspect(t *testing.T) {
	dir := t.TempDir()
	genPath := filepath.Join(dir, "fixture.bin")
	scratchPath := filepath.Join(dir, "scratch.bin")
	outPath := filepath.Join(dir, "sorted.bin")

	runGen([]string{
		"--out", genPath,
		"--count", "300",
		"--record-size", "16",
		"--shape", "random",
		"--seed", "7",
	})
	if _, err := os.Stat(genPath); err != nil {
		t.Fatalf("gen did not produce output: %v", err)
	}

	runSort([]string{
		"--in", genPath,
		"--scratch", scratchPath,
		"--out", outPath,
		"--record-size", "16",
		"--page-size", "256",
		"--buffer-pages", "4",
	})

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("sort did not produce output: %v", err)
	}
	if len(data) != 300*16 {
		t.Fatalf("expected %d bytes, got %d", 300*16, len(data))
	}

	var prev uint32
	for i := 0; i < 300; i++ {
		key := uint32(data[i*16])<<24 | uint32(data[i*16+1])<<16 | uint32(data[i*16+2])<<8 | uint32(data[i*16+3])
		if i > 0 && key < prev {
			t.Fatalf("output not sorted at record %d", i)
		}
		prev = key
	}

	runInspect([]string{
		"--scratch", scratchPath,
		"--offset", "0",
		"--pages", "1",
		"--page-size", "256",
	})
}
