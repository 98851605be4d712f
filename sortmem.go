package extsort

import "sort"

// recordSpan adapts an addressable region of buf into Go's sort.Interface.
// It is the in-memory sort adapter (C2): the rest of the engine treats it as
// a black-box O(n log n) total-order sort and only observes it through the
// comparison and swap counts it reports to Metrics. offsetOf maps a logical
// record index to that record's byte offset within buf, which lets callers
// sort records that are packed one-per-page-slot with header gaps between
// pages rather than laid out as one flat byte run.
type recordSpan struct {
	buf      []byte
	n        int
	recSize  int
	offsetOf func(int) int
	cmp      Comparator
	metrics  *Metrics
	scratch  []byte
}

func (s *recordSpan) Len() int { return s.n }

func (s *recordSpan) record(i int) []byte {
	off := s.offsetOf(i)
	return s.buf[off : off+s.recSize]
}

func (s *recordSpan) Less(i, j int) bool {
	s.metrics.Comparisons++
	return s.cmp.Compare(s.record(i), s.record(j)) < 0
}

func (s *recordSpan) Swap(i, j int) {
	s.metrics.RecordCopies++
	a, b := s.record(i), s.record(j)
	copy(s.scratch, a)
	copy(a, b)
	copy(b, s.scratch)
}

// sortInPlace sorts n records of recSize bytes, addressed via offsetOf,
// in place according to cmp. Comparisons and swaps are reported to m.
func sortInPlace(buf []byte, n, recSize int, offsetOf func(int) int, cmp Comparator, m *Metrics) {
	if n < 2 {
		return
	}
	sort.Sort(&recordSpan{
		buf:      buf,
		n:        n,
		recSize:  recSize,
		offsetOf: offsetOf,
		cmp:      cmp,
		metrics:  m,
		scratch:  make([]byte, recSize),
	})
}
