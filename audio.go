package main

import "sync"

// wakeAudioStream turns the wave displacement sampled under the boat into a
// stereo PCM stream for ebiten's audio player.
type wakeAudioStream struct {
	mu     sync.Mutex
	target float32
	level  float32
	dc     float32
}

func newWakeAudioStream() *wakeAudioStream {
	return &wakeAudioStream{}
}

// SetSample feeds the latest displacement sample. A slowly tracking DC
// estimate is removed so a standing swell does not produce a constant tone.
func (s *wakeAudioStream) SetSample(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	const alpha = 0.001
	s.dc += alpha * (v - s.dc)
	s.target = v - s.dc
	s.mu.Unlock()
}

// Read eases the output toward the latest sample to avoid zipper noise and
// emits whole stereo int16 frames.
func (s *wakeAudioStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	target := s.target
	level := s.level
	s.mu.Unlock()

	const ramp = 0.002
	for i := 0; i < frameBytes; i += 4 {
		level += (target - level) * ramp
		v := int16(level * 24000)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}

	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
	return frameBytes, nil
}

func (s *wakeAudioStream) Close() error { return nil }
