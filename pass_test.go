package extsort

import "testing"

// TestRunPassesSkipAdjustment builds a scratch file by hand with seven
// pre-sorted runs of non-uniform page counts (2,1,2,2,1,1,1) under
// BufferPages=4 (maxRunsPerPass=3). Seven runs over a fan-in of three forces
// three merge invocations, and the non-uniform page counts land the third
// invocation's tail-catches-head wrap in the middle of its pickup loop
// (slot i=1) rather than at the first or last slot — the one case that
// exercises the `i > 0 && i < maxRunsPerPass-1` skip-adjustment branch in
// runPasses. A newPass flag that gets reset every outer iteration instead of
// persisting across merge invocations corrupts firstPartitionSize exactly
// here, so this test would have caught that regression where
// TestSortRequiresMultiplePasses (BufferPages=3, where the branch is
// structurally dead) and the BufferPages=4 Sort tests (whose run sizes
// happen to wrap only at the first or last slot) do not.
func TestRunPassesSkipAdjustment(t *testing.T) {
	const (
		pageSize    = 24
		recordSize  = 8
		bufferPages = 4
	)
	cfg := Config{PageSize: pageSize, RecordSize: recordSize, HeaderSize: DefaultHeaderSize, BufferPages: bufferPages}
	tuplesPerPage := cfg.TuplesPerPage()
	if tuplesPerPage != 2 {
		t.Fatalf("test assumes 2 tuples per page, got %d", tuplesPerPage)
	}

	runPageCounts := []int{2, 1, 2, 2, 1, 1, 1}
	runKeys := [][]uint32{
		{0, 7, 14, 18},
		{1, 8},
		{2, 9, 15, 19},
		{3, 10, 16, 17},
		{4, 11},
		{5, 12},
		{6, 13},
	}

	const n = 20
	scratch := &memScratch{}
	offset := int64(0)
	for ri, pages := range runPageCounts {
		keys := runKeys[ri]
		if len(keys) != pages*tuplesPerPage {
			t.Fatalf("run %d: %d keys does not match %d pages of %d tuples", ri, len(keys), pages, tuplesPerPage)
		}
		buf := make([]byte, pages*pageSize)
		for p := 0; p < pages; p++ {
			pageStart := p * pageSize
			WritePageHeader(buf[pageStart:pageStart+cfg.HeaderSize], uint32(p), uint16(tuplesPerPage))
			for r := 0; r < tuplesPerPage; r++ {
				rec := buf[pageStart+cfg.HeaderSize+r*recordSize : pageStart+cfg.HeaderSize+(r+1)*recordSize]
				k := keys[p*tuplesPerPage+r]
				rec[0] = byte(k >> 24)
				rec[1] = byte(k >> 16)
				rec[2] = byte(k >> 8)
				rec[3] = byte(k)
			}
		}
		if _, err := scratch.WriteAt(buf, offset); err != nil {
			t.Fatalf("run %d: WriteAt: %v", ri, err)
		}
		offset += int64(len(buf))
	}
	lastWriteEnd := offset

	workBuf := make([]byte, cfg.BufferPages*cfg.PageSize)
	m := &Metrics{}
	finalOffset, err := runPasses(scratch, cfg, workBuf, len(runPageCounts), lastWriteEnd, keyCompare, m)
	if err != nil {
		t.Fatalf("runPasses: %v", err)
	}

	got := readSortedRun(t, scratch.data, cfg, finalOffset, n)
	if !isSorted(got) {
		t.Fatalf("output not sorted: %v", got)
	}
	seen := make([]bool, n)
	for _, k := range got {
		if k >= n || seen[k] {
			t.Fatalf("output is not a permutation of 0..%d: %v", n-1, got)
		}
		seen[k] = true
	}
}
