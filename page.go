package extsort

import "encoding/binary"

// Page header layout (C1): 4 bytes block_index, 2 bytes record_count,
// little-endian. This is the only framing the engine persists to disk; the
// records that follow are opaque to it.
const (
	blockIndexSize  = 4
	recordCountSize = 2
)

// DefaultHeaderSize is the reference page header size used by NewConfig.
const DefaultHeaderSize = blockIndexSize + recordCountSize

// WritePageHeader encodes a page's block index and record count into the
// header slot at the start of buf. buf must be at least HeaderSize bytes;
// callers pass the page's leading HeaderSize-byte window. The header is
// written once, immediately before the page is flushed, and is never patched
// afterward.
func WritePageHeader(buf []byte, blockIndex uint32, count uint16) {
	binary.LittleEndian.PutUint32(buf[0:blockIndexSize], blockIndex)
	binary.LittleEndian.PutUint16(buf[blockIndexSize:blockIndexSize+recordCountSize], count)
}

// ReadBlockIndex decodes the block_index field of a page header.
func ReadBlockIndex(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[0:blockIndexSize])
}

// ReadRecordCount decodes the record_count field of a page header.
func ReadRecordCount(buf []byte) uint16 {
	return binary.LittleEndian.Uint16(buf[blockIndexSize : blockIndexSize+recordCountSize])
}
