package modplayer

// Amiga period table: 5 octaves of 12 semitones each, finetune 0. Lower
// period means higher pitch. This is the full ProTracker table; the
// teacher's historical table only carried the middle three octaves, this
// extends it up and down one octave each to match the 5-octave data model.
var basePeriods = [60]int{
	// Octave 0
	1712, 1616, 1525, 1440, 1357, 1281, 1209, 1141, 1077, 1017, 961, 907,
	// Octave 1
	856, 808, 762, 720, 678, 640, 604, 570, 538, 508, 480, 453,
	// Octave 2
	428, 404, 381, 360, 339, 320, 302, 285, 269, 254, 240, 226,
	// Octave 3
	214, 202, 190, 180, 170, 160, 151, 143, 135, 127, 120, 113,
	// Octave 4
	107, 101, 95, 90, 85, 80, 76, 71, 67, 64, 60, 57,
}

// noteNames gives the display name for a semitone within an octave.
var noteNames = [12]string{
	"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-",
}

// fineTuning holds the .12 fixed point period scale for finetune values -8..+7,
// indexed by finetune+8. Lifted from Micromod/ProTracker.
var fineTuning = [16]int{
	4340, 4308, 4277, 4247, 4216, 4186, 4156, 4126,
	4096, 4067, 4037, 4008, 3979, 3951, 3922, 3894,
}

const (
	notesPerOctave   = 12
	numNotes         = len(basePeriods)
	finetuneVariants = len(fineTuning)
	latticeSize      = numNotes * finetuneVariants
)

// noteFromPeriod returns the table index whose finetune-0 period equals p,
// and true if such a note exists.
func noteFromPeriod(p int) (int, bool) {
	for i, bp := range basePeriods {
		if bp == p {
			return i, true
		}
	}
	return 0, false
}

// periodOf returns the period for the given note index adjusted by finetune,
// saturating note and finetune to the table's endpoints.
func periodOf(note, finetune int) int {
	note = clampInt(note, 0, numNotes-1)
	ft := clampInt(finetune+8, 0, finetuneVariants-1)
	return (basePeriods[note] * fineTuning[ft]) >> 12
}

// noteString renders a table index as e.g. "C-2" or "F#4": the octave digit
// is note/12, so table index 24 (period 428, the ProTracker "C-2") renders
// as "C-2".
func noteString(note int) string {
	if note < 0 || note >= numNotes {
		return "   "
	}
	return noteNames[note%notesPerOctave] + string(rune('0'+note/notesPerOctave))
}

// latticeIndexForPeriod finds the nearest (note, finetune) lattice slot for an
// arbitrary period value. The lattice interleaves all 16 finetune variants of
// all 60 notes into one pitch-ordered sequence of latticeSize slots.
func latticeIndexForPeriod(period int) int {
	best, bestDiff := 0, -1
	for n := 0; n < numNotes; n++ {
		for f := 0; f < finetuneVariants; f++ {
			p := periodOf(n, f-8)
			d := period - p
			if d < 0 {
				d = -d
			}
			if bestDiff < 0 || d < bestDiff {
				bestDiff = d
				best = n*finetuneVariants + f
			}
		}
	}
	return best
}

func periodFromLatticeIndex(idx int) int {
	idx = clampInt(idx, 0, latticeSize-1)
	note := idx / finetuneVariants
	ft := idx % finetuneVariants
	return periodOf(note, ft-8)
}

// increment steps a period down by k lattice slots (higher pitch, lower
// period), saturating at the top of the table. Used for non-glissando
// portamento, which slides continuously through finetune-resolution steps.
// The lattice is ordered so increasing index means increasing pitch, so
// stepping the period down means moving to a higher lattice index.
func increment(period, k int) int {
	return periodFromLatticeIndex(latticeIndexForPeriod(period) + k)
}

// decrement steps a period up by k lattice slots (lower pitch, higher
// period), saturating at the bottom of the table.
func decrement(period, k int) int {
	return periodFromLatticeIndex(latticeIndexForPeriod(period) - k)
}

// incrementHalf steps a period up in pitch by k whole semitones, keeping the
// finetune sub-position fixed. Used by glissando portamento and arpeggio.
func incrementHalf(period, k int) int {
	idx := latticeIndexForPeriod(period)
	note, ft := idx/finetuneVariants, idx%finetuneVariants
	return periodOf(clampInt(note+k, 0, numNotes-1), ft-8)
}

// decrementHalf steps a period down in pitch by k whole semitones.
func decrementHalf(period, k int) int {
	idx := latticeIndexForPeriod(period)
	note, ft := idx/finetuneVariants, idx%finetuneVariants
	return periodOf(clampInt(note-k, 0, numNotes-1), ft-8)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
