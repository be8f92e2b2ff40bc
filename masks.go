package main

// span represents an inclusive column range inside a row mask.
type span struct{ start, end int }

// rowMask groups contiguous water spans for a single row that requires
// computation.
type rowMask struct {
	y     int
	spans []span
}

// workerMask collects the row masks assigned to one worker goroutine.
type workerMask struct {
	rows []rowMask
}

// buildInteriorRows computes the row masks describing water cells at a tier's
// resolution. Land cells are excluded so the solver never writes them.
func buildInteriorRows(land []bool, width, height int) []rowMask {
	rows := make([]rowMask, 0, height-2)
	for y := 1; y < height-1; y++ {
		base := y * width
		spans := make([]span, 0, 8)
		in := false
		start := 0
		for x := 1; x < width-1; x++ {
			blocked := land[base+x]
			if !blocked && !in {
				in = true
				start = x
			}
			if (blocked || x == width-2) && in {
				end := x - 1
				if x == width-2 && !blocked {
					end = x
				}
				if end >= start {
					spans = append(spans, span{start: start, end: end})
				}
				in = false
			}
		}
		if len(spans) == 0 {
			continue
		}
		rows = append(rows, rowMask{y: y, spans: spans})
	}
	return rows
}

// assignRowMasks distributes row masks across worker goroutines in round robin
// fashion.
func assignRowMasks(workerCount int, rows []rowMask) []workerMask {
	if workerCount < 1 {
		workerCount = 1
	}
	masks := make([]workerMask, workerCount)
	for idx, row := range rows {
		workerIdx := idx % workerCount
		masks[workerIdx].rows = append(masks[workerIdx].rows, row)
	}
	return masks
}
