package extsort

import "io"

// runInfo describes one run picked up for a merge pass: the file offset of
// its first page and its page count.
type runInfo struct {
	offset int64
	pages  int
}

// pageReadWriter is the random-access capability the pass controller and
// merger need from the scratch file.
type pageReadWriter interface {
	io.ReaderAt
	io.WriterAt
}

// mergeRuns merges len(runs) runs (at most cfg.BufferPages-1) into one
// output run written starting at writeCursor (C4). Buffer slots
// 0..len(runs)-1 each hold one input page, one per run; the last buffer slot
// (index cfg.BufferPages-1) always holds the output page, regardless of how
// many runs are actually being merged this call.
//
// Selection among live runs uses a linear scan with a strict ">" comparison
// against the current best, so on ties the earlier-indexed run wins and
// keeps its relative order — this matches the reference engine's run
// selection exactly and is why this is a scan rather than a heap.
func mergeRuns(rw pageReadWriter, cfg Config, buf []byte, runs []runInfo, writeCursor int64, cmp Comparator, m *Metrics) (int, error) {
	k := len(runs)
	P := cfg.PageSize
	H := cfg.HeaderSize
	R := cfg.RecordSize

	remaining := make([]int, k)
	offset := make([]int64, k)
	pos := make([]int, k)
	count := make([]int, k)

	for j := 0; j < k; j++ {
		remaining[j] = runs[j].pages
		offset[j] = runs[j].offset
		slot := buf[j*P : (j+1)*P]
		if err := readPage(rw, slot, offset[j], m); err != nil {
			return 0, err
		}
		count[j] = int(ReadRecordCount(slot[:H]))
	}

	outSlot := buf[(cfg.BufferPages-1)*P : cfg.BufferPages*P]
	outBlockIndex := 0
	outPos := H
	pagesWritten := 0

	recordAt := func(j int) []byte {
		start := j*P + H + pos[j]*R
		return buf[start : start+R]
	}

	flush := func() error {
		WritePageHeader(outSlot, uint32(outBlockIndex), uint16((outPos-H)/R))
		if err := writePage(rw, outSlot, writeCursor, m); err != nil {
			return err
		}
		writeCursor += int64(P)
		outBlockIndex++
		outPos = H
		pagesWritten++
		return nil
	}

	for {
		best := -1
		for j := 0; j < k; j++ {
			if remaining[j] == 0 {
				continue
			}
			if best == -1 {
				best = j
				continue
			}
			m.Comparisons++
			if cmp.Compare(recordAt(best), recordAt(j)) > 0 {
				best = j
			}
		}
		if best == -1 {
			break
		}

		copy(outSlot[outPos:outPos+R], recordAt(best))
		outPos += R
		m.RecordCopies++

		if outPos > P-R {
			if err := flush(); err != nil {
				return pagesWritten, err
			}
		}

		pos[best]++
		if pos[best] >= count[best] {
			offset[best] += int64(P)
			remaining[best]--
			pos[best] = 0
			if remaining[best] > 0 {
				slot := buf[best*P : (best+1)*P]
				if err := readPage(rw, slot, offset[best], m); err != nil {
					return pagesWritten, err
				}
				count[best] = int(ReadRecordCount(slot[:H]))
			}
		}
	}

	if outPos > H {
		if err := flush(); err != nil {
			return pagesWritten, err
		}
	}

	return pagesWritten, nil
}
