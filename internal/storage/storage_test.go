package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrepareAndRelease(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "scratch.bin"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if err := Prepare(f, 64*1024); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := Release(f); err != nil {
		t.Fatalf("Release: %v", err)
	}
}
