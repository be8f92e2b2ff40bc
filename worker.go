package main

import "sync"

// cpuWaveSolver steps tier wave fields on a pool of worker goroutines. Tiers
// are processed one at a time; each tier's rows are split across workers by
// the masks precomputed from its land raster.
type cpuWaveSolver struct {
	workerCount int
	mu          sync.Mutex
	cond        *sync.Cond
	pending     int
	step        int
	field       *waveField
	masks       []workerMask
}

// newCPUWaveSolver constructs the pool and launches its worker goroutines.
func newCPUWaveSolver(workers int) *cpuWaveSolver {
	if workers < 1 {
		workers = 1
	}
	s := &cpuWaveSolver{workerCount: workers}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < workers; i++ {
		go s.workerLoop(i)
	}
	return s
}

// workerLoop executes finite difference updates for rows assigned to the
// worker, one broadcast step at a time.
func (s *cpuWaveSolver) workerLoop(index int) {
	lastStep := 0
	s.mu.Lock()
	for {
		for s.step == lastStep {
			s.cond.Wait()
		}
		lastStep = s.step
		field := s.field
		var mask workerMask
		if index < len(s.masks) {
			mask = s.masks[index]
		}
		s.mu.Unlock()

		if len(mask.rows) > 0 {
			stepRows(field, &mask)
		}

		s.mu.Lock()
		s.pending--
		if s.pending == 0 {
			s.cond.Broadcast()
		}
	}
}

// stepTier advances one tier's field by a single fixed solver step.
func (s *cpuWaveSolver) stepTier(t *tier) {
	s.mu.Lock()
	s.field = t.field
	s.masks = t.masks
	s.pending = s.workerCount
	s.step++
	s.cond.Broadcast()
	for s.pending > 0 {
		s.cond.Wait()
	}
	s.mu.Unlock()
	t.field.zeroBoundaries()
	t.field.swap()
}

// stepRows runs the finite difference update over one worker's water spans.
// Land cells sit between spans and are never written; they stay at zero.
func stepRows(field *waveField, mask *workerMask) {
	width := field.width
	wd := waveDamp32
	ws := waveSpeed32
	for _, row := range mask.rows {
		y := row.y
		rowBase := y * width
		center := field.curr[rowBase : rowBase+width]
		prev := field.prev[rowBase : rowBase+width]
		top := field.curr[rowBase-width : rowBase]
		bottom := field.curr[rowBase+width : rowBase+2*width]
		nextRow := field.next[rowBase : rowBase+width]
		nextRow[0] = 0
		nextRow[width-1] = 0

		for _, sp := range row.spans {
			start := sp.start
			if start < 1 {
				start = 1
			}
			end := sp.end
			if end > width-2 {
				end = width - 2
			}
			for x := start; x <= end; x++ {
				c := center[x]
				lap := center[x-1] + center[x+1] + top[x] + bottom[x] - 4*c
				nextRow[x] = ((2*c - prev[x]) + ws*lap) * wd
			}
		}
	}
}
