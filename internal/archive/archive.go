// Package archive compresses a finished sorted run into a standalone
// container file. It is a post-processing step only: it never touches the
// scratch file while a sort is in progress, so the fixed page framing the
// engine relies on for offset arithmetic is never exposed to a variable-size
// compressed stream mid-sort.
package archive

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// PackSortedRun reads length bytes starting at offset from src and writes
// them, LZ4-compressed, to dst. src is typically the scratch file and
// offset/length the final sorted run's page range.
func PackSortedRun(src io.ReaderAt, offset, length int64, dst io.Writer) error {
	lw := lz4.NewWriter(dst)
	section := io.NewSectionReader(src, offset, length)
	if _, err := io.Copy(lw, section); err != nil {
		return fmt.Errorf("archive: compress: %w", err)
	}
	if err := lw.Close(); err != nil {
		return fmt.Errorf("archive: close compressed stream: %w", err)
	}
	return nil
}

// UnpackSortedRun decompresses an LZ4 container produced by PackSortedRun
// into dst, preserving the original page framing byte-for-byte.
func UnpackSortedRun(src io.Reader, dst io.Writer) error {
	lr := lz4.NewReader(src)
	if _, err := io.Copy(dst, lr); err != nil {
		return fmt.Errorf("archive: decompress: %w", err)
	}
	return nil
}
