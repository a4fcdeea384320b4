package modplayer

// Resampler converts a Voice's native sample rate to the fixed 44.1kHz output
// rate by nearest-neighbor interpolation. Aliasing-tolerant by design; no
// low-pass filtering is performed, matching the original source's resampler.
type Resampler struct {
	voice   *Voice
	srcHz   float64
	dstHz   float64
	phase   float64 // accumulated input-sample position owed, in source samples
	current float32 // most recently read source sample, held across upsampled frames
	primed  bool
}

// NewResampler builds a Resampler reading v at srcHz, emitting at dstHz.
func NewResampler(v *Voice, srcHz, dstHz float64) *Resampler {
	return &Resampler{voice: v, srcHz: srcHz, dstHz: dstHz}
}

// setRate changes the source rate without discarding phase, so a period
// change mid-note (portamento, arpeggio) does not click the playback cursor.
func (r *Resampler) setRate(srcHz float64) {
	r.srcHz = srcHz
}

// nextFrame produces one output-rate frame by nearest-neighbor sampling of
// the underlying voice. The very first call primes current with the voice's
// first sample and returns it unadvanced. Every later call accumulates
// srcHz/dstHz source-samples owed since the previous frame; whenever that
// reaches 1 or more, the voice is advanced that many times before the (held)
// current sample is returned.
func (r *Resampler) nextFrame() float32 {
	if r.voice == nil || r.srcHz <= 0 {
		return 0
	}
	if !r.primed {
		r.current = r.voice.nextSample()
		r.primed = true
		return r.current
	}
	r.phase += r.srcHz / r.dstHz
	for r.phase >= 1 {
		r.current = r.voice.nextSample()
		r.phase -= 1
	}
	return r.current
}

// isExhausted reports whether the underlying voice has run out of samples.
func (r *Resampler) isExhausted() bool {
	return r.voice == nil || r.voice.isExhausted()
}

// srcHzForPeriod derives a voice's native sample rate from its current
// period and the transport's selected Amiga clock.
func srcHzForPeriod(period int, clockHz float64) float64 {
	if period <= 0 {
		return 0
	}
	return clockHz / (float64(period) * 2)
}
