package modplayer

// Voice is a restartable cursor over a Sample's 8-bit PCM payload. It tracks
// whether playback has crossed into the sample's loop region.
type Voice struct {
	sample    *Sample
	offset    int
	repeating bool
	exhausted bool
}

// NewVoice constructs a Voice reading from smp starting at offset 0.
func NewVoice(smp *Sample) *Voice {
	return &Voice{sample: smp}
}

// reset clears offset and repeating, restarting playback from the beginning
// of the sample. Used by effect E9x sample retrigger (a note trigger builds
// a fresh Voice instead).
func (v *Voice) reset() {
	v.offset = 0
	v.repeating = false
	v.exhausted = false
}

// isExhausted reports whether this voice ran past a non-looping sample's end
// and has nothing further to produce.
func (v *Voice) isExhausted() bool { return v.exhausted }

// nextSample returns the next PCM byte mapped from [-128,127] to [-1,1], and
// advances the cursor. It returns 0 once the voice is exhausted.
func (v *Voice) nextSample() float32 {
	if v == nil || v.exhausted {
		return 0
	}
	smp := v.sample
	loops := smp.Loops()

	if v.repeating {
		if v.offset >= smp.LoopStart+smp.LoopLen {
			v.offset = smp.LoopStart
		}
	} else if v.offset >= smp.Length {
		if loops {
			v.offset = smp.LoopStart
			v.repeating = true
		} else {
			v.exhausted = true
			return 0
		}
	}

	if v.offset < 0 || v.offset >= len(smp.Data) {
		v.exhausted = true
		return 0
	}

	out := float32(smp.Data[v.offset]) / 128
	v.offset++
	return out
}
