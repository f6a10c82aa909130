package audio

// ----- Reverb ----- //

// Pairwise coprime so the combs never line up into a periodic ring.
var combLengths = [...]int{
	1597, 2083, 2729, 3259, 4177, 5279, 6737,
	7883, 9173, 10151, 11497, 13367, 14029,
}

const combGain = 0.05

type combBuffer struct {
	cursor int
	past   []float64
}

func (c *combBuffer) advance() {
	c.cursor++
	if c.cursor >= len(c.past) {
		c.cursor = 0
	}
}

// reverb is a bank of parallel combs that all receive the same mixed value.
type reverb struct {
	combs [len(combLengths)]combBuffer
}

func newReverb() *reverb {
	r := &reverb{}
	for i, length := range combLengths {
		r.combs[i].past = make([]float64, length)
	}
	return r
}

func (r *reverb) diffuse(in float64) float64 {
	x := combGain * in
	for i := range r.combs {
		c := &r.combs[i]
		x += combGain * c.past[c.cursor]
	}
	for i := range r.combs {
		c := &r.combs[i]
		c.past[c.cursor] = x
		c.advance()
	}
	return x
}
