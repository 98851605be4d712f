package extsort

// runPasses repeatedly merges up to cfg.BufferPages-1 runs at a time until a
// single run remains, reusing the scratch file in place for both the
// dwindling tail of input runs and the growing head of output runs (C5). It
// returns the file offset of the final sorted run.
//
// The bookkeeping below is a direct port of the reference pass controller:
// lastBlockPtr consumes input runs from the tail back toward firstRunPtr at
// their head, while writeCursor appends merged output separately. Each time
// the tail catches the head a new pass starts, and whenever the new pass
// number is a multiple of three (passes 3, 6, ...) the write cursor wraps
// back to file offset 0 so the file never grows past what a single pass
// needs. first_partition_size exists only to let that wrap skip over
// the still-unconsumed tail of the partition being read when it isn't the
// very first or very last pickup slot of a pass.
func runPasses(rw pageReadWriter, cfg Config, buf []byte, numRuns int, lastWriteEnd int64, cmp Comparator, m *Metrics) (int64, error) {
	maxRunsPerPass := cfg.BufferPages - 1
	pageSize := int64(cfg.PageSize)

	writeCursor := lastWriteEnd
	firstRunPtr := int64(0)
	lastBlockPtr := lastWriteEnd - pageSize
	nextFirstPtr := lastWriteEnd
	passNumber := 1
	// Placeholder until newPass is first consumed below, which happens on
	// the very first merge invocation regardless of whether it wraps.
	firstPartitionSize := maxRunsPerPass

	runs := make([]runInfo, maxRunsPerPass)

	// newPass persists across merge invocations, exactly as the reference
	// controller declares it once before the outer loop: it is set whenever
	// the tail catches the head during a pickup loop and is only consumed
	// (and cleared) once the loop that observed it has finished picking up
	// runs. Resetting it at the top of every invocation instead would leave
	// firstPartitionSize at its placeholder value across invocations that
	// never wrap, corrupting the skip-adjustment on the invocation that
	// finally does.
	newPass := true

	for numRuns > 1 {
		i := 0
		for i < maxRunsPerPass && i < numRuns {
			if lastBlockPtr < firstRunPtr {
				newPass = true
				if i > 0 && i < maxRunsPerPass-1 {
					firstRunPtr = nextFirstPtr + int64(firstPartitionSize)*pageSize
				} else {
					firstRunPtr = nextFirstPtr
				}
				lastBlockPtr = writeCursor - pageSize
				passNumber++
				if passNumber%3 == 0 {
					writeCursor = 0
				}
				nextFirstPtr = writeCursor
			}

			if err := readPage(rw, buf[:cfg.PageSize], lastBlockPtr, m); err != nil {
				return 0, err
			}
			blockIndex := ReadBlockIndex(buf[:cfg.HeaderSize])

			runs[i].pages = int(blockIndex) + 1
			runs[i].offset = lastBlockPtr - int64(blockIndex)*pageSize
			lastBlockPtr = runs[i].offset - pageSize

			i++
		}
		k := i

		if newPass {
			firstPartitionSize = runs[0].pages + runs[1].pages
			newPass = false
		}

		if cfg.LogPass != nil {
			cfg.LogPass(passNumber, k, firstRunPtr, lastBlockPtr, nextFirstPtr)
		}

		pagesWritten, err := mergeRuns(rw, cfg, buf, runs[:k], writeCursor, cmp, m)
		if err != nil {
			return 0, err
		}
		writeCursor += int64(pagesWritten) * pageSize
		numRuns = numRuns - k + 1
	}

	return nextFirstPtr, nil
}
