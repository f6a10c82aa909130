package audio

// ----- Delay Line ----- //

const (
	delayLength   = 23009 // ~0.5 sec at 44.1kHz
	delayFeedback = 0.04
)

type delayLine struct {
	cursor int
	past   []float64
}

func newDelayLine(length int) *delayLine {
	return &delayLine{
		past: make([]float64, length),
	}
}

// process returns the echo to add to in. The slot is read before it is
// overwritten with in plus that echo, so the echo itself is fed back.
func (d *delayLine) process(in float64) float64 {
	delayed := d.past[d.cursor] * delayFeedback
	d.past[d.cursor] = in + delayed
	d.cursor++
	if d.cursor >= len(d.past) {
		d.cursor = 0
	}
	return delayed
}
