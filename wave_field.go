package main

// waveField stores the three simulation buffers required by the finite
// difference solver for one cascade tier.
type waveField struct {
	width, height int
	curr          []float32
	prev          []float32
	next          []float32
	currDirty     bool
}

// newWaveField allocates a waveField with properly sized buffers.
func newWaveField(width, height int) *waveField {
	return &waveField{
		width: width, height: height,
		curr: make([]float32, width*height),
		prev: make([]float32, width*height),
		next: make([]float32, width*height),
	}
}

// queueImpulse adds a displacement impulse into the current buffer. It reports
// whether the impulse landed inside the solver's interior region.
func (f *waveField) queueImpulse(x, y int, strength float32) bool {
	if x <= 0 || x >= f.width-1 || y <= 0 || y >= f.height-1 {
		return false
	}
	f.curr[y*f.width+x] += strength
	f.currDirty = true
	return true
}

// readCurr returns the value in the current buffer at the given coordinates.
func (f *waveField) readCurr(x, y int) float32 {
	return f.curr[y*f.width+x]
}

// zeroCell clears the current, previous, and next buffers at the given cell.
func (f *waveField) zeroCell(x, y int) {
	idx := y*f.width + x
	f.curr[idx] = 0
	f.prev[idx] = 0
	f.next[idx] = 0
	f.currDirty = true
}

// currWasModified reports whether the host mutated the current buffer since
// the last clearCurrDirty call. The OpenCL solver uses it to skip uploads.
func (f *waveField) currWasModified() bool { return f.currDirty }

// clearCurrDirty acknowledges that device and host buffers are in sync.
func (f *waveField) clearCurrDirty() { f.currDirty = false }

// swap rotates the triple buffers so that next becomes current and current
// becomes previous.
func (f *waveField) swap() {
	f.prev, f.curr, f.next = f.curr, f.next, f.prev
}

// zeroBoundaries applies reflecting boundary conditions on the edges of the
// grid so energy leaving a tier does not wrap around.
func (f *waveField) zeroBoundaries() {
	lastRow := f.height - 1
	lastCol := f.width - 1
	reflect := float32(boundaryReflect)
	for x := 0; x < f.width; x++ {
		top := f.next[1*f.width+x]
		bottom := f.next[(lastRow-1)*f.width+x]
		f.next[0*f.width+x] = -top * reflect
		f.next[lastRow*f.width+x] = -bottom * reflect
	}
	for y := 1; y < lastRow; y++ {
		left := f.next[y*f.width+1]
		right := f.next[y*f.width+lastCol-1]
		f.next[y*f.width+0] = -left * reflect
		f.next[y*f.width+lastCol] = -right * reflect
	}
}
